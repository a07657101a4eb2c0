package models

import (
	"time"
)

// User model. Users sign in with their email address.
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Email          string   `gorm:"size:255;not null;unique"`
	HashedPassword []byte   `gorm:"not null"`
	Profile        *Profile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	RoleID         *uint    `gorm:"index"`
	Role           Role     `gorm:"foreignKey:RoleID;references:ID"`
}
