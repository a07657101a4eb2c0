package spreadsheet

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"aqso/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		row := r
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	return buf
}

func TestReadTransactionsAliasesAndProblems(t *testing.T) {
	buf := workbook(t, [][]any{
		{"No.", "Nama Penerima", "Tujuan", "Keterangan", "Marketing", "Nominal", "Tanggal"},
		{"", "Budi", "Uang Muka", "transfer BCA", "Andi", "Rp 1.500.000", "01/12/2025"},
		{"KW-9", "Sari", "", "", "", "2000", "2025-12-02"},
		{"", "", "", "", "", "", ""},
		{"", "Dewi", "Cicilan", "", "", 750000.5, 45992},
	})
	rows, problems, err := ReadTransactions(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows got %d (%v)", len(rows), problems)
	}
	if len(problems) != 1 || !strings.HasPrefix(problems[0], "Baris 3:") {
		t.Fatalf("unexpected problems %v", problems)
	}
	first := rows[0]
	if first.Line != 2 || first.Input.DiterimaDari != "Budi" || first.Input.NoKwitansi != "" ||
		!first.Input.Jumlah.Equal(decimal.NewFromInt(1500000)) || first.Input.Tanggal != "2025-12-01" ||
		*first.Input.NamaMarketing != "Andi" || first.Input.Terbilang != nil {
		t.Fatalf("unexpected first row %+v", first.Input)
	}
	last := rows[1]
	if last.Line != 5 || !last.Input.Jumlah.Equal(decimal.RequireFromString("750000.5")) {
		t.Fatalf("unexpected last row %+v", last.Input)
	}
	// 45992 is the Excel serial day of 2025-12-01
	if last.Input.Tanggal != "2025-12-01" {
		t.Fatalf("serial date not converted: %s", last.Input.Tanggal)
	}
}

func TestExportThenImport(t *testing.T) {
	ket := "lunas"
	words := "dua juta rupiah"
	tanggal, _ := models.ParseDate("2025-11-30")
	txs := []models.Transaction{
		{ID: 7, NoKwitansi: "007", DiterimaDari: "Budi", UntukPembayaran: "Pelunasan", KetPembayaran: &ket, Jumlah: decimal.NewFromInt(2000000), Terbilang: &words, Tanggal: tanggal},
	}
	buf := &bytes.Buffer{}
	if err := WriteTransactions(buf, txs); err != nil {
		t.Fatalf("export: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if sheets := f.GetSheetList(); len(sheets) != 1 || sheets[0] != SheetName {
		t.Fatalf("unexpected sheets %v", sheets)
	}
	f.Close()

	rows, problems, err := ReadTransactions(bytes.NewReader(buf.Bytes()))
	if err != nil || len(problems) != 0 || len(rows) != 1 {
		t.Fatalf("import: rows=%d problems=%v err=%v", len(rows), problems, err)
	}
	in := rows[0].Input
	if in.NoKwitansi != "007" || in.UntukPembayaran != "Pelunasan" || *in.KetPembayaran != "lunas" ||
		!in.Jumlah.Equal(decimal.NewFromInt(2000000)) || *in.Terbilang != words || in.Tanggal != "2025-11-30" {
		t.Fatalf("round trip mismatch %+v", in)
	}
}

func TestReadTransactionsEmpty(t *testing.T) {
	buf := workbook(t, [][]any{{"Jumlah"}})
	if _, _, err := ReadTransactions(buf); err != ErrEmptyWorkbook {
		t.Fatalf("expected ErrEmptyWorkbook got %v", err)
	}
}

func TestParseAmount(t *testing.T) {
	cases := map[string]string{
		"1500000":      "1500000",
		"1500000.5":    "1500000.5",
		"1.500":        "1500",
		"Rp 1.500.000": "1500000",
		"10.000,00":    "10000",
		"7,500.00":     "7500",
		"Rp2.500,50":   "2500.5",
	}
	for in, want := range cases {
		got, err := ParseAmount(in)
		if err != nil || !got.Equal(decimal.RequireFromString(want)) {
			t.Errorf("ParseAmount(%q) = %s, %v want %s", in, got, err, want)
		}
	}
	if _, err := ParseAmount("abc"); err == nil {
		t.Errorf("expected error for abc")
	}
}

func TestExportFileName(t *testing.T) {
	got := ExportFileName(time.Date(2026, 10, 18, 15, 0, 0, 0, time.UTC))
	if got != "transaksi_2026-10-18.xlsx" {
		t.Fatalf("got %s", got)
	}
}
