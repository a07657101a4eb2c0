package main

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"aqso/models"
	"aqso/pkg/photo"
	"aqso/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxPhotoSize = 5 * 1024 * 1024

type userView struct {
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func viewUser(u *models.User) userView {
	return userView{Email: u.Email, Role: u.Role.Name, CreatedAt: u.CreatedAt}
}

func (s *server) serverError(c *gin.Context, msg string, err error) {
	s.log.Error(msg, zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
}

func (s *server) registerHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing fields"})
		return
	}
	user, err := s.registerUser(req.Email, req.Password, req.Role)
	switch {
	case errors.Is(err, store.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
		return
	case errors.Is(err, store.ErrInvalidRole), errors.Is(err, store.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	case err != nil:
		s.serverError(c, "register failed", err)
		return
	}
	s.log.Info("user registered", zap.String("email", user.Email), zap.String("role", req.Role))
	c.JSON(http.StatusCreated, gin.H{"message": "User created"})
}

func (s *server) loginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing fields"})
		return
	}
	user, err := s.authenticate(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}
	token, err := s.issueAccessToken(user.Email, user.Role.Name)
	if err != nil {
		s.serverError(c, "sign token", err)
		return
	}
	refresh, err := s.createRefreshToken(s.db, user.ID)
	if err != nil {
		s.serverError(c, "create refresh token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "refresh_token": refresh, "user": viewUser(user)})
}

// refreshHandler exchanges a refresh token for a new access token and rotates the refresh token.
func (s *server) refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing fields"})
		return
	}
	rt, err := s.findRefreshToken(req.RefreshToken)
	if err != nil || !rt.Usable(time.Now()) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired refresh token"})
		return
	}
	var user models.User
	if err := s.db.Preload("Role").First(&user, rt.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "user not found"})
		return
	}
	next, err := s.rotateRefreshToken(rt)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid or expired refresh token"})
		return
	}
	token, err := s.issueAccessToken(user.Email, user.Role.Name)
	if err != nil {
		s.serverError(c, "sign token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "refresh_token": next})
}

func (s *server) revokeRefreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing fields"})
		return
	}
	rt, err := s.findRefreshToken(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "refresh token not found"})
		return
	}
	if err := s.db.Model(rt).Update("revoked", true).Error; err != nil {
		s.serverError(c, "revoke refresh token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh token revoked"})
}

func meHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"email": c.GetString(ctxEmail), "role": c.GetString(ctxRole)})
}

func (s *server) listUsersHandler(c *gin.Context) {
	var users []models.User
	if err := s.db.Preload("Role").Order("created_at asc").Find(&users).Error; err != nil {
		s.serverError(c, "list users", err)
		return
	}
	out := make([]userView, 0, len(users))
	for i := range users {
		out = append(out, viewUser(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (s *server) updateUserRoleHandler(c *gin.Context) {
	var req struct {
		Role string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || !models.ValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid role"})
		return
	}
	user, err := s.findUserByEmail(c.Param("email"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	var role models.Role
	if err := s.db.Where("name = ?", req.Role).First(&role).Error; err != nil {
		s.serverError(c, "find role", err)
		return
	}
	if err := s.db.Model(user).Update("role_id", role.ID).Error; err != nil {
		s.serverError(c, "update user role", err)
		return
	}
	user.Role = role
	s.log.Info("user role updated", zap.String("email", user.Email), zap.String("role", role.Name))
	c.JSON(http.StatusOK, gin.H{"message": "User updated", "user": viewUser(user)})
}

func (s *server) deleteUserHandler(c *gin.Context) {
	user, err := s.findUserByEmail(c.Param("email"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err := s.db.Delete(&models.User{}, user.ID).Error; err != nil {
		s.serverError(c, "delete user", err)
		return
	}
	s.log.Info("user deleted", zap.String("email", user.Email))
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func (s *server) getProfileHandler(c *gin.Context) {
	var p models.Profile
	err := s.db.Where("email = ?", strings.ToLower(c.Param("email"))).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	if err != nil {
		s.serverError(c, "get profile", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// loadOrNewProfile returns the stored profile for :email or an unsaved one
// bound to that user.
func (s *server) loadOrNewProfile(c *gin.Context) (*models.Profile, bool) {
	user, err := s.findUserByEmail(c.Param("email"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return nil, false
	}
	p := models.Profile{UserID: user.ID, Email: user.Email}
	if err := s.db.Where("user_id = ?", user.ID).First(&p).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.serverError(c, "load profile", err)
		return nil, false
	}
	return &p, true
}

func (s *server) putProfileHandler(c *gin.Context) {
	var req struct {
		Nama     *string `json:"nama"`
		Alamat   *string `json:"alamat"`
		NoTelpon *string `json:"no_telpon"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid JSON body"})
		return
	}
	p, ok := s.loadOrNewProfile(c)
	if !ok {
		return
	}
	if req.Nama != nil {
		p.Nama = strings.TrimSpace(*req.Nama)
	}
	if req.Alamat != nil {
		p.Alamat = strings.TrimSpace(*req.Alamat)
	}
	if req.NoTelpon != nil {
		p.NoTelpon = strings.TrimSpace(*req.NoTelpon)
	}
	if err := s.db.Save(p).Error; err != nil {
		s.serverError(c, "save profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated", "profile": p})
}

// uploadPhotoHandler stores a resized profile photo under UPLOAD_BASE/profiles.
func (s *server) uploadPhotoHandler(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file missing"})
		return
	}
	if file.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file too large (max 5MB)"})
		return
	}
	p, ok := s.loadOrNewProfile(c)
	if !ok {
		return
	}
	src, err := file.Open()
	if err != nil {
		s.serverError(c, "open upload", err)
		return
	}
	defer src.Close()

	rel := path.Join("profiles", fmt.Sprintf("%d.jpg", p.UserID))
	if err := photo.SaveProfilePhoto(src, filepath.Join(s.cfg.UploadBase, filepath.FromSlash(rel))); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file is not a supported image"})
		return
	}
	p.FotoProfil = rel
	if err := s.db.Save(p).Error; err != nil {
		s.serverError(c, "save profile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Photo updated", "profile": p})
}
