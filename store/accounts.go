package store

import (
	"errors"
	"fmt"
	"strings"

	"aqso/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const MinPasswordLen = 6

var (
	ErrEmailTaken       = errors.New("Email already exists")
	ErrInvalidRole      = errors.New("Invalid role")
	ErrPasswordTooShort = fmt.Errorf("password too short (min %d)", MinPasswordLen)
)

// SeedRoles makes sure the admin and pemilik roles exist.
func SeedRoles(db *gorm.DB) error {
	roles := []models.Role{
		{Name: models.RoleAdmin, Description: "full access"},
		{Name: models.RolePemilik, Description: "owner account"},
	}
	for _, r := range roles {
		if err := db.Where("name = ?", r.Name).FirstOrCreate(&r).Error; err != nil {
			return fmt.Errorf("seed role %s: %w", r.Name, err)
		}
	}
	return nil
}

// HashPassword applies the password policy and returns the bcrypt hash.
func HashPassword(password string) ([]byte, error) {
	if len(password) < MinPasswordLen {
		return nil, ErrPasswordTooShort
	}
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// CreateUser stores a user with an already hashed password and its profile
// in one transaction. Emails are stored lower-cased.
func CreateUser(db *gorm.DB, email string, hashed []byte, roleName, nama string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !models.ValidRole(roleName) {
		return nil, ErrInvalidRole
	}
	var role models.Role
	if err := db.Where("name = ?", roleName).First(&role).Error; err != nil {
		return nil, fmt.Errorf("find role %s: %w", roleName, err)
	}
	rid := role.ID
	user := models.User{Email: email, HashedPassword: hashed, RoleID: &rid}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Role", "Profile").Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Profile{UserID: user.ID, Email: user.Email, Nama: nama}).Error
	})
	if IsUniqueViolation(err) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}
	user.Role = role
	return &user, nil
}

// SetPassword replaces the password of the user with the given email.
func SetPassword(db *gorm.DB, email, password string) error {
	hashed, err := HashPassword(password)
	if err != nil {
		return err
	}
	res := db.Model(&models.User{}).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).Update("hashed_password", hashed)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
