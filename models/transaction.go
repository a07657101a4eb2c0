package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// jumlah and harga go out as JSON numbers, as the front end expects.
	decimal.MarshalJSONWithoutQuotes = true
}

// Transaction is a payment received and printed as a kwitansi (receipt).
type Transaction struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	NoKwitansi      string          `gorm:"column:no_kwitansi;size:50;not null;uniqueIndex" json:"no_kwitansi"`
	DiterimaDari    string          `gorm:"size:255;not null" json:"diterima_dari"`
	UntukPembayaran string          `gorm:"size:255;not null" json:"untuk_pembayaran"`
	KetPembayaran   *string         `gorm:"size:255" json:"ket_pembayaran"`
	NamaMarketing   *string         `gorm:"size:255" json:"nama_marketing"`
	Jumlah          decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"jumlah"`
	Terbilang       *string         `gorm:"size:500" json:"terbilang"`
	Tanggal         Date            `gorm:"not null;index" json:"tanggal"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
