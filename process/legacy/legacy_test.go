package legacy

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoadAndConvert(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"users.json":        `[{"email":"pemilik@aqso.local","password":"$2a$10$abcdefghijklmnopqrstuv","role":"pemilik"}]`,
		"profiles.json":     `{"pemilik@aqso.local":{"nama":"Pak Pemilik","no_telpon":"0812"}}`,
		"transactions.json": `[{"no_kwitansi":"007","diterima_dari":"Budi","untuk_pembayaran":"DP","jumlah":"1500000","tanggal":"2025-12-01T00:00:00.000Z"},{"no_kwitansi":"008","diterima_dari":"Sari","untuk_pembayaran":"DP","jumlah":2000,"tanggal":"besok"}]`,
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	d, err := Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(d.Users) != 1 || d.Profiles["pemilik@aqso.local"].Nama != "Pak Pemilik" || len(d.Transactions) != 2 || len(d.Customers) != 0 {
		t.Fatalf("unexpected data %+v", d)
	}

	tx, err := d.Transactions[0].ToModel()
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if tx.NoKwitansi != "007" || tx.Tanggal.String() != "2025-12-01" || !tx.Jumlah.Equal(decimal.NewFromInt(1500000)) || tx.KetPembayaran != nil {
		t.Fatalf("unexpected model %+v", tx)
	}
	if _, err := d.Transactions[1].ToModel(); err == nil {
		t.Fatalf("expected bad date error")
	}
}

func TestApplyDryRunDoesNotTouchDB(t *testing.T) {
	d := Data{
		Users:        []User{{Email: "a@aqso.local", Role: "admin"}},
		Transactions: []Transaction{{NoKwitansi: "001", Tanggal: "2025-01-02", Jumlah: decimal.NewFromInt(5)}},
		Customers:    []Customer{{Nama: "Dewi", Tanggal: "2025-01-03"}},
	}
	out := &bytes.Buffer{}
	// a nil db is never dereferenced in dry-run mode
	if err := Apply(context.Background(), nil, d, true, out); err != nil {
		t.Fatalf("apply: %v", err)
	}
	for _, want := range []string{"DRY: would create user a@aqso.local", "DRY: would create transaction 001 2025-01-02 5.00", "DRY: would create customer Dewi"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("missing %q in:\n%s", want, out.String())
		}
	}
}

func TestPasswordHashKeepsBcrypt(t *testing.T) {
	h, err := passwordHash("$2b$10$xyz")
	if err != nil || string(h) != "$2b$10$xyz" {
		t.Fatalf("got %s %v", h, err)
	}
	if _, err := passwordHash("abc"); err == nil {
		t.Fatalf("expected short password error")
	}
}
