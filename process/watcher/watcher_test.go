package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"aqso/service"
	"aqso/store/storetest"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, path string, rows [][]any) {
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
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestScanImportsAndMovesFiles(t *testing.T) {
	dir := t.TempDir()
	repo := storetest.NewTransactions()
	w := New(dir, service.NewTransactionService(repo, nil), nil, 1)

	writeWorkbook(t, filepath.Join(dir, "a.xlsx"), [][]any{
		{"Diterima Dari", "Untuk Pembayaran", "Jumlah"},
		{"Budi", "Uang Muka", 1500000},
		{"Sari", "Cicilan", "Rp 500.000"},
	})
	writeWorkbook(t, filepath.Join(dir, "b.xlsx"), [][]any{
		{"Diterima Dari", "Untuk Pembayaran", "Jumlah"},
		{"", "Cicilan", 1000},
		{"Dewi", "Pelunasan", 2000},
	})
	if err := os.WriteFile(filepath.Join(dir, "broken.xlsx"), []byte("not a workbook"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644); err != nil {
		t.Fatal(err)
	}

	out := w.Scan(context.Background())
	if len(out) != 3 {
		t.Fatalf("expected 3 outcomes got %d", len(out))
	}
	if out[0].File != "a.xlsx" || out[0].Created != 2 || out[0].Err != nil {
		t.Fatalf("unexpected a.xlsx outcome %+v", out[0])
	}
	if out[1].File != "b.xlsx" || out[1].Created != 1 || len(out[1].Errors) != 1 {
		t.Fatalf("unexpected b.xlsx outcome %+v", out[1])
	}
	if out[2].File != "broken.xlsx" || out[2].Err == nil {
		t.Fatalf("expected broken.xlsx to fail: %+v", out[2])
	}
	if repo.Len() != 3 {
		t.Fatalf("expected 3 transactions got %d", repo.Len())
	}

	for _, p := range []string{
		filepath.Join(dir, ProcessedDir, "a.xlsx"),
		filepath.Join(dir, ProcessedDir, "b.xlsx"),
		filepath.Join(dir, FailedDir, "broken.xlsx"),
		filepath.Join(dir, "notes.txt"),
	} {
		if !exists(p) {
			t.Errorf("expected %s to exist", p)
		}
	}
	if exists(filepath.Join(dir, "a.xlsx")) {
		t.Errorf("a.xlsx left in the watched dir")
	}
}

func TestWatchPicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	repo := storetest.NewTransactions()
	w := New(dir, service.NewTransactionService(repo, nil), nil, 1)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Watch(ctx) }()

	// give the watcher time to register the directory
	time.Sleep(200 * time.Millisecond)
	writeWorkbook(t, filepath.Join(dir, "new.xlsx"), [][]any{
		{"Diterima Dari", "Untuk Pembayaran", "Jumlah"},
		{"Budi", "Uang Muka", 1000},
	})

	deadline := time.Now().Add(5 * time.Second)
	for !exists(filepath.Join(dir, ProcessedDir, "new.xlsx")) {
		if time.Now().After(deadline) {
			cancel()
			t.Fatalf("file was not processed")
		}
		time.Sleep(50 * time.Millisecond)
	}
	cancel()
	if err := <-errCh; err != nil {
		t.Fatalf("watch: %v", err)
	}
	if repo.Len() != 1 {
		t.Fatalf("expected 1 transaction got %d", repo.Len())
	}
}
