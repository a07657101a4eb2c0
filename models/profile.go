package models

import "time"

// Profile holds a user's personal details (one-to-one with User).
type Profile struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	UserID     uint      `gorm:"uniqueIndex;not null" json:"-"`
	Email      string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Nama       string    `gorm:"size:255" json:"nama"`
	Alamat     string    `gorm:"type:text" json:"alamat"`
	NoTelpon   string    `gorm:"size:50" json:"no_telpon"`
	FotoProfil string    `gorm:"size:255" json:"foto_profil"`
}
