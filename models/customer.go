package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer is a house buyer tracked by the back office.
type Customer struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	Tanggal    Date            `gorm:"not null;index" json:"tanggal"`
	Nama       string          `gorm:"size:255;not null" json:"nama"`
	Alamat     string          `gorm:"type:text" json:"alamat"`
	NoTelpon   string          `gorm:"size:50" json:"no_telpon"`
	Type       string          `gorm:"size:100" json:"type"`
	Harga      decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"harga"`
	NoRumah    string          `gorm:"size:50" json:"no_rumah"`
	Keterangan string          `gorm:"type:text" json:"keterangan"`
	Lunas      bool            `gorm:"not null;default:false" json:"lunas"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
