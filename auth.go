package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"aqso/models"
	"aqso/store"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var errInvalidCredentials = errors.New("Invalid credentials")

// registerUser creates a user with the given role and an empty profile.
func (s *server) registerUser(email, password, roleName string) (*models.User, error) {
	if !models.ValidRole(roleName) {
		return nil, store.ErrInvalidRole
	}
	hashed, err := store.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return store.CreateUser(s.db, email, hashed, roleName, "")
}

// authenticate checks an email/password pair and returns the user with its role loaded.
func (s *server) authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := s.db.Preload("Role").Where("email = ?", email).First(&user).Error; err != nil {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return nil, errInvalidCredentials
	}
	return &user, nil
}

func (s *server) findUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Role").Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *server) issueAccessToken(email, role string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"role":  role,
		"exp":   time.Now().Add(s.cfg.TokenTTL).Unix(),
	})
	return token.SignedString(s.cfg.JWTSecret)
}

func (s *server) parseAccessToken(raw string) (email, role string, err error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return s.cfg.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return "", "", fmt.Errorf("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("invalid claims")
	}
	email, _ = claims["email"].(string)
	role, _ = claims["role"].(string)
	if email == "" {
		return "", "", fmt.Errorf("invalid claims")
	}
	return email, role, nil
}

// createRefreshToken stores the hash of a fresh random token and returns the raw value.
func (s *server) createRefreshToken(tx *gorm.DB, userID uint) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	raw := hex.EncodeToString(b)
	rt := models.RefreshToken{UserID: userID, TokenHash: hashToken(raw), ExpiresAt: time.Now().Add(s.cfg.RefreshTTL)}
	if err := tx.Omit("User").Create(&rt).Error; err != nil {
		return "", err
	}
	return raw, nil
}

func (s *server) findRefreshToken(raw string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	if err := s.db.Where("token_hash = ?", hashToken(raw)).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// rotateRefreshToken revokes rt and issues its replacement in one transaction.
func (s *server) rotateRefreshToken(rt *models.RefreshToken) (string, error) {
	var next string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.RefreshToken{}).Where("id = ? AND revoked = ?", rt.ID, false).Update("revoked", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errors.New("refresh token already used")
		}
		var err error
		next, err = s.createRefreshToken(tx, rt.UserID)
		return err
	})
	return next, err
}

func hashToken(raw string) string {
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:])
}
