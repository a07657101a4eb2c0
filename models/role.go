package models

import "time"

const (
	RoleAdmin   = "admin"
	RolePemilik = "pemilik" // owner, read-mostly access
)

// Role represents user roles with numeric primary key
type Role struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Name        string `gorm:"size:32;uniqueIndex;not null"`
	Description string `gorm:"size:255"`
}

// ValidRole reports whether name is one of the seeded roles.
func ValidRole(name string) bool {
	return name == RoleAdmin || name == RolePemilik
}
