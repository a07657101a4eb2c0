// Package legacy reads the JSON files kept by the old file-based back office
// (users.json, profiles.json, transactions.json, customers.json) and loads
// them into the database.
package legacy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"aqso/models"
	"aqso/store"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type User struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type Profile struct {
	Nama       string `json:"nama"`
	Alamat     string `json:"alamat"`
	NoTelpon   string `json:"no_telpon"`
	FotoProfil string `json:"foto_profil"`
}

type Transaction struct {
	NoKwitansi      string          `json:"no_kwitansi"`
	DiterimaDari    string          `json:"diterima_dari"`
	UntukPembayaran string          `json:"untuk_pembayaran"`
	KetPembayaran   string          `json:"ket_pembayaran"`
	NamaMarketing   string          `json:"nama_marketing"`
	Jumlah          decimal.Decimal `json:"jumlah"`
	Terbilang       string          `json:"terbilang"`
	Tanggal         string          `json:"tanggal"`
}

type Customer struct {
	Tanggal    string          `json:"tanggal"`
	Nama       string          `json:"nama"`
	Alamat     string          `json:"alamat"`
	NoTelpon   string          `json:"no_telpon"`
	Type       string          `json:"type"`
	Harga      decimal.Decimal `json:"harga"`
	NoRumah    string          `json:"no_rumah"`
	Keterangan string          `json:"keterangan"`
	Lunas      bool            `json:"lunas"`
}

// Data is the content of a legacy data directory. Profiles are keyed by email.
type Data struct {
	Users        []User
	Profiles     map[string]Profile
	Transactions []Transaction
	Customers    []Customer
}

// Load reads the legacy files in dir. Missing files are treated as empty.
func Load(dir string) (Data, error) {
	var d Data
	for _, f := range []struct {
		name string
		dst  any
	}{
		{"users.json", &d.Users},
		{"profiles.json", &d.Profiles},
		{"transactions.json", &d.Transactions},
		{"customers.json", &d.Customers},
	} {
		b, err := os.ReadFile(filepath.Join(dir, f.name))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return d, err
		}
		if err := json.Unmarshal(b, f.dst); err != nil {
			return d, fmt.Errorf("parse %s: %w", f.name, err)
		}
	}
	return d, nil
}

// ToModel converts a legacy transaction; an unparsable date is an error.
func (t Transaction) ToModel() (models.Transaction, error) {
	tanggal, err := models.ParseDate(t.Tanggal)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("kwitansi %s: tanggal %q: %w", t.NoKwitansi, t.Tanggal, err)
	}
	return models.Transaction{
		NoKwitansi:      strings.TrimSpace(t.NoKwitansi),
		DiterimaDari:    t.DiterimaDari,
		UntukPembayaran: t.UntukPembayaran,
		KetPembayaran:   optional(t.KetPembayaran),
		NamaMarketing:   optional(t.NamaMarketing),
		Jumlah:          t.Jumlah,
		Terbilang:       optional(t.Terbilang),
		Tanggal:         tanggal,
	}, nil
}

func (c Customer) ToModel() (models.Customer, error) {
	tanggal, err := models.ParseDate(c.Tanggal)
	if err != nil {
		return models.Customer{}, fmt.Errorf("customer %s: tanggal %q: %w", c.Nama, c.Tanggal, err)
	}
	return models.Customer{
		Tanggal:    tanggal,
		Nama:       c.Nama,
		Alamat:     c.Alamat,
		NoTelpon:   c.NoTelpon,
		Type:       c.Type,
		Harga:      c.Harga,
		NoRumah:    c.NoRumah,
		Keterangan: c.Keterangan,
		Lunas:      c.Lunas,
	}, nil
}

// passwordHash keeps stored bcrypt hashes and hashes anything else.
func passwordHash(pw string) ([]byte, error) {
	if strings.HasPrefix(pw, "$2a$") || strings.HasPrefix(pw, "$2b$") || strings.HasPrefix(pw, "$2y$") {
		return []byte(pw), nil
	}
	return store.HashPassword(pw)
}

// Apply writes d to the database, or only describes it when dry is set.
// Records that already exist are reported and skipped.
func Apply(ctx context.Context, db *gorm.DB, d Data, dry bool, out io.Writer) error {
	prefix := ""
	if dry {
		prefix = "DRY: "
	}
	if !dry {
		if err := store.SeedRoles(db); err != nil {
			return err
		}
	}

	for _, u := range d.Users {
		if dry {
			fmt.Fprintf(out, "%swould create user %s role=%s\n", prefix, u.Email, u.Role)
			continue
		}
		hashed, err := passwordHash(u.Password)
		if err != nil {
			fmt.Fprintf(out, "skip user %s: %v\n", u.Email, err)
			continue
		}
		p := d.Profiles[u.Email]
		_, err = store.CreateUser(db, u.Email, hashed, u.Role, p.Nama)
		switch {
		case errors.Is(err, store.ErrEmailTaken):
			fmt.Fprintf(out, "EXISTS: user %s\n", u.Email)
		case err != nil:
			fmt.Fprintf(out, "skip user %s: %v\n", u.Email, err)
		default:
			fmt.Fprintf(out, "created user %s\n", u.Email)
		}
	}

	for email, p := range d.Profiles {
		if dry {
			fmt.Fprintf(out, "%swould update profile %s\n", prefix, email)
			continue
		}
		res := db.WithContext(ctx).Model(&models.Profile{}).Where("email = ?", strings.ToLower(email)).
			Updates(map[string]any{"nama": p.Nama, "alamat": p.Alamat, "no_telpon": p.NoTelpon, "foto_profil": p.FotoProfil})
		if res.Error != nil {
			return fmt.Errorf("update profile %s: %w", email, res.Error)
		}
		if res.RowsAffected == 0 {
			fmt.Fprintf(out, "skip profile %s: no such user\n", email)
		}
	}

	txs := store.NewTransactions(db)
	for _, lt := range d.Transactions {
		t, err := lt.ToModel()
		if err != nil {
			fmt.Fprintf(out, "skip %v\n", err)
			continue
		}
		if dry {
			fmt.Fprintf(out, "%swould create transaction %s %s %s\n", prefix, t.NoKwitansi, t.Tanggal, t.Jumlah.StringFixed(2))
			continue
		}
		err = txs.Insert(ctx, &t)
		switch {
		case store.IsUniqueViolation(err):
			fmt.Fprintf(out, "EXISTS: transaction %s\n", t.NoKwitansi)
		case err != nil:
			return fmt.Errorf("insert transaction %s: %w", t.NoKwitansi, err)
		}
	}

	customers := store.NewCustomers(db)
	for _, lc := range d.Customers {
		c, err := lc.ToModel()
		if err != nil {
			fmt.Fprintf(out, "skip %v\n", err)
			continue
		}
		if dry {
			fmt.Fprintf(out, "%swould create customer %s\n", prefix, c.Nama)
			continue
		}
		if err := customers.Insert(ctx, &c); err != nil {
			return fmt.Errorf("insert customer %s: %w", c.Nama, err)
		}
	}
	fmt.Fprintf(out, "%susers=%d profiles=%d transactions=%d customers=%d\n", prefix, len(d.Users), len(d.Profiles), len(d.Transactions), len(d.Customers))
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
