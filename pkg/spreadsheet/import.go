package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"aqso/models"
	"aqso/pkg/kwitansi"
	"aqso/service"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// header aliases, already normalized (see normalizeHeader)
var columnAliases = map[string][]string{
	"no_kwitansi":      {"nokwitansi", "nokwit", "nowkwitansi", "no"},
	"diterima_dari":    {"diterimadari", "diterima", "sudahditerimadari", "sudahditerima", "nama", "namapenerima", "penerima"},
	"untuk_pembayaran": {"untukpembayaran", "pembayaran", "tujuan"},
	"ket_pembayaran":   {"ketpembayaran", "keterangan", "keteranganpembayaran", "ket"},
	"nama_marketing":   {"namamarketing", "marketing"},
	"jumlah":           {"jumlah", "amount", "nominal"},
	"terbilang":        {"terbilang"},
	"tanggal":          {"tanggal", "date"},
}

var (
	plainNumber   = regexp.MustCompile(`^-?\d+(\.\d+)?$`)
	thousandsOnly = regexp.MustCompile(`^-?\d{1,3}(\.\d{3})+$`)
	centsRE       = regexp.MustCompile(`[.,]\d{2}$`)
)

// ErrEmptyWorkbook is returned when the first sheet has no data rows.
var ErrEmptyWorkbook = errors.New("file Excel kosong atau tidak berisi data")

// ReadTransactions parses the first sheet of an xlsx workbook into import
// rows. Lines that cannot become a create request are reported in problems
// and left out of rows. Line numbers match the sheet (header is line 1).
func ReadTransactions(r io.Reader) (rows []service.ImportRow, problems []string, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrEmptyWorkbook
	}
	grid, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(grid) < 2 {
		return nil, nil, ErrEmptyWorkbook
	}

	index := columnIndex(grid[0])
	for i, cells := range grid[1:] {
		line := i + 2
		get := func(field string) string {
			col, ok := index[field]
			if !ok || col >= len(cells) {
				return ""
			}
			return strings.TrimSpace(cells[col])
		}
		if blank(cells) {
			continue
		}

		diterima, tujuan, jumlahRaw := get("diterima_dari"), get("untuk_pembayaran"), get("jumlah")
		if diterima == "" || tujuan == "" || jumlahRaw == "" {
			problems = append(problems, fmt.Sprintf("Baris %d: kolom wajib hilang (Diterima Dari, Untuk Pembayaran, Jumlah).", line))
			continue
		}
		jumlah, err := ParseAmount(jumlahRaw)
		if err != nil {
			problems = append(problems, fmt.Sprintf("Baris %d: jumlah %q tidak valid.", line, jumlahRaw))
			continue
		}

		in := service.CreateTransactionInput{
			NoKwitansi:      get("no_kwitansi"),
			DiterimaDari:    diterima,
			UntukPembayaran: tujuan,
			Jumlah:          &jumlah,
			KetPembayaran:   optional(get("ket_pembayaran")),
			NamaMarketing:   optional(get("nama_marketing")),
			Terbilang:       optional(get("terbilang")),
			Tanggal:         normalizeDate(get("tanggal")),
		}
		rows = append(rows, service.ImportRow{Line: line, Input: in})
	}
	return rows, problems, nil
}

// ParseAmount reads an amount from a raw numeric cell ("1500000.5") or from
// Indonesian formatted text ("Rp 1.500.000,00").
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.TrimPrefix(s, "rp")
	s = strings.TrimPrefix(s, "idr")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	if plainNumber.MatchString(s) && !thousandsOnly.MatchString(s) {
		return decimal.NewFromString(s)
	}
	intPart, frac := s, ""
	if centsRE.MatchString(s) {
		intPart, frac = s[:len(s)-3], s[len(s)-2:]
	}
	digits := kwitansi.Digits(intPart)
	if digits == "" {
		return decimal.Zero, fmt.Errorf("no digits in %q", raw)
	}
	if frac != "" {
		digits += "." + frac
	}
	if strings.HasPrefix(s, "-") {
		digits = "-" + digits
	}
	return decimal.NewFromString(digits)
}

func columnIndex(header []string) map[string]int {
	byName := map[string]int{}
	for i, h := range header {
		n := normalizeHeader(h)
		if _, dup := byName[n]; !dup {
			byName[n] = i
		}
	}
	index := map[string]int{}
	for field, aliases := range columnAliases {
		for _, a := range aliases {
			if col, ok := byName[a]; ok {
				index[field] = col
				break
			}
		}
	}
	return index
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '.', '_':
			return -1
		}
		return r
	}, h)
}

var dateLayouts = []string{models.DateLayout, "02/01/2006", "2/1/2006", "02-01-2006", time.RFC3339}

// normalizeDate turns Excel serial days and common written layouts into
// YYYY-MM-DD. Anything else is passed through for the service to reject.
func normalizeDate(v string) string {
	if v == "" {
		return ""
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return t.Format(models.DateLayout)
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format(models.DateLayout)
		}
	}
	return v
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func blank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
