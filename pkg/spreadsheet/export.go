// Package spreadsheet reads and writes the transaction Excel workbook used
// by the back office for bulk entry and reporting.
package spreadsheet

import (
	"fmt"
	"io"
	"time"

	"aqso/models"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding transactions.
const SheetName = "Transaksi"

var exportHeader = []any{"ID", "No Kwitansi", "Diterima Dari", "Untuk Pembayaran", "Ket Pembayaran", "Nama Marketing", "Jumlah", "Terbilang", "Tanggal"}

var columnWidths = []float64{5, 15, 20, 20, 20, 18, 15, 30, 12}

// ExportFileName returns the download name for an export made at now.
func ExportFileName(now time.Time) string {
	return "transaksi_" + now.Format(models.DateLayout) + ".xlsx"
}

// WriteTransactions writes txs as an xlsx workbook to w.
func WriteTransactions(w io.Writer, txs []models.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A1", &exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, tx := range txs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		jumlah, _ := tx.Jumlah.Float64()
		row := []any{
			tx.ID,
			tx.NoKwitansi,
			tx.DiterimaDari,
			tx.UntukPembayaran,
			deref(tx.KetPembayaran),
			deref(tx.NamaMarketing),
			jumlah,
			deref(tx.Terbilang),
			tx.Tanggal.String(),
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	for i, width := range columnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(SheetName, col, col, width); err != nil {
			return fmt.Errorf("set width %s: %w", col, err)
		}
	}
	return f.Write(w)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
