// Package report prints month-bounded transaction totals.
package report

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"aqso/models"
	"aqso/pkg/terbilang"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Line is a total for one grouping key.
type Line struct {
	Key   string
	Count int
	Total decimal.Decimal
}

// Summary covers the transactions dated within one calendar month.
type Summary struct {
	Month       string
	Count       int
	Total       decimal.Decimal
	ByPurpose   []Line
	ByMarketing []Line
	Rows        []models.Transaction
}

// MonthRange parses YYYY-MM and returns [start, end) in UTC.
func MonthRange(month string) (time.Time, time.Time, error) {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid month format, expected YYYY-MM: %w", err)
	}
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0), nil
}

// Load fetches the transactions of month ordered by date and receipt number.
func Load(ctx context.Context, db *gorm.DB, month string) ([]models.Transaction, error) {
	start, end, err := MonthRange(month)
	if err != nil {
		return nil, err
	}
	var rows []models.Transaction
	err = db.WithContext(ctx).
		Where("tanggal >= ? AND tanggal < ?", start, end).
		Order("tanggal").Order("no_kwitansi").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch rows failed: %w", err)
	}
	return rows, nil
}

// Summarize totals rows. Rows outside month are ignored.
func Summarize(month string, rows []models.Transaction) (Summary, error) {
	start, end, err := MonthRange(month)
	if err != nil {
		return Summary{}, err
	}
	s := Summary{Month: month, Total: decimal.Zero}
	purpose := map[string]*Line{}
	marketing := map[string]*Line{}
	for _, r := range rows {
		if r.Tanggal.Before(start) || !r.Tanggal.Before(end) {
			continue
		}
		s.Count++
		s.Total = s.Total.Add(r.Jumlah)
		s.Rows = append(s.Rows, r)
		add(purpose, r.UntukPembayaran, r.Jumlah)
		m := "-"
		if r.NamaMarketing != nil && *r.NamaMarketing != "" {
			m = *r.NamaMarketing
		}
		add(marketing, m, r.Jumlah)
	}
	s.ByPurpose = sorted(purpose)
	s.ByMarketing = sorted(marketing)
	return s, nil
}

func add(m map[string]*Line, key string, amount decimal.Decimal) {
	l, ok := m[key]
	if !ok {
		l = &Line{Key: key, Total: decimal.Zero}
		m[key] = l
	}
	l.Count++
	l.Total = l.Total.Add(amount)
}

// sorted orders lines by total descending, then key.
func sorted(m map[string]*Line) []Line {
	out := make([]Line, 0, len(m))
	for _, l := range m {
		out = append(out, *l)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Print writes s in the operator text format; list adds one line per row.
func Print(w io.Writer, s Summary, list bool) {
	fmt.Fprintf(w, "Laporan transaksi bulan %s:\n", s.Month)
	fmt.Fprintf(w, "  records=%d total=%s\n", s.Count, terbilang.FormatRupiah(s.Total))
	fmt.Fprintf(w, "  terbilang: %s\n", terbilang.Rupiah(s.Total))
	printLines(w, "Per pembayaran", s.ByPurpose)
	printLines(w, "Per marketing", s.ByMarketing)
	if !list {
		return
	}
	fmt.Fprintln(w, "Rincian:")
	for _, r := range s.Rows {
		fmt.Fprintf(w, "%d|%s|%s|%s|%s|%s\n", r.ID, r.NoKwitansi, r.Tanggal, r.DiterimaDari, r.UntukPembayaran, r.Jumlah.StringFixed(2))
	}
}

func printLines(w io.Writer, title string, lines []Line) {
	if len(lines) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", title)
	for _, l := range lines {
		fmt.Fprintf(w, "  %-24s %3d  %s\n", l.Key, l.Count, terbilang.FormatRupiah(l.Total))
	}
}
