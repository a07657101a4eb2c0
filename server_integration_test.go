package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"aqso/models"
	"aqso/store"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// setupDBServer builds the full server on a real database. Integration tests
// are opt-in: set DB_DSN_TEST=1 and DB_DSN to run them.
func setupDBServer(t *testing.T) (*gin.Engine, *server) {
	t.Helper()
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	gin.SetMode(gin.TestMode)
	t.Setenv("UPLOAD_BASE", t.TempDir())
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	cfg.RequireAuth = true
	gdb, err := openDB(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	s := newServer(cfg, gdb, zap.NewNop())
	return s.router(), s
}

func TestFullFlow(t *testing.T) {
	r, _ := setupDBServer(t)
	email := fmt.Sprintf("pemilik%d@aqso.local", time.Now().UnixNano())

	// 1. Register
	resp := performRequest(r, http.MethodPost, "/api/register", jsonBody(t, map[string]string{"email": email, "password": "rahasia1", "role": "pemilik"}), "", "application/json")
	if resp.Code != http.StatusCreated {
		t.Fatalf("register failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodPost, "/api/register", jsonBody(t, map[string]string{"email": email, "password": "rahasia1", "role": "pemilik"}), "", "application/json")
	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate register got %d", resp.Code)
	}

	// 2. Login
	resp = performRequest(r, http.MethodPost, "/api/login", jsonBody(t, map[string]string{"email": email, "password": "rahasia1"}), "", "application/json")
	if resp.Code != http.StatusOK {
		t.Fatalf("login failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var login struct {
		Token        string            `json:"token"`
		RefreshToken string            `json:"refresh_token"`
		User         map[string]string `json:"user"`
	}
	decode(t, resp, &login)
	if login.Token == "" || login.RefreshToken == "" || login.User["role"] != "pemilik" {
		t.Fatalf("unexpected login response: %+v", login)
	}
	token := login.Token

	// 3. Profile upsert and photo
	resp = performRequest(r, http.MethodPut, "/api/profile/"+email, jsonBody(t, map[string]string{"nama": "Pemilik Satu", "no_telpon": "0812"}), token, "application/json")
	if resp.Code != http.StatusOK {
		t.Fatalf("put profile failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	img := &bytes.Buffer{}
	_ = imaging.Encode(img, imaging.New(800, 600, color.White), imaging.PNG)
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	w, _ := mw.CreateFormFile("file", "me.png")
	_, _ = w.Write(img.Bytes())
	_ = mw.Close()
	resp = performRequest(r, http.MethodPost, "/api/profile/"+email+"/photo", buf, token, mw.FormDataContentType())
	if resp.Code != http.StatusOK {
		t.Fatalf("photo upload failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var prof map[string]any
	resp = performRequest(r, http.MethodGet, "/api/profile/"+email, nil, token, "")
	decode(t, resp, &prof)
	if prof["nama"] != "Pemilik Satu" || prof["foto_profil"] == "" {
		t.Fatalf("unexpected profile %v", prof)
	}
	if _, err := os.Stat(filepath.Join(os.Getenv("UPLOAD_BASE"), filepath.FromSlash(prof["foto_profil"].(string)))); err != nil {
		t.Fatalf("photo not stored: %v", err)
	}

	// 4. Transactions
	resp = performRequest(r, http.MethodPost, "/api/transactions", jsonBody(t, map[string]any{"diterima_dari": "Budi", "untuk_pembayaran": "Uang Muka", "jumlah": 1500000}), token, "application/json")
	if resp.Code != http.StatusCreated {
		t.Fatalf("create transaction failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	var tx map[string]any
	decode(t, resp, &tx)
	resp = performRequest(r, http.MethodDelete, fmt.Sprintf("/api/transactions/%v", tx["id"]), nil, token, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("delete transaction failed status=%d body=%s", resp.Code, resp.Body.String())
	}

	// 5. Refresh rotates; the old refresh token is then unusable
	resp = performRequest(r, http.MethodPost, "/api/refresh", jsonBody(t, map[string]string{"refresh_token": login.RefreshToken}), "", "application/json")
	if resp.Code != http.StatusOK {
		t.Fatalf("refresh failed status=%d body=%s", resp.Code, resp.Body.String())
	}
	resp = performRequest(r, http.MethodPost, "/api/refresh", jsonBody(t, map[string]string{"refresh_token": login.RefreshToken}), "", "application/json")
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for reused refresh token got %d", resp.Code)
	}

	// 6. Admin removes the user
	resp = performRequest(r, http.MethodPost, "/api/login", jsonBody(t, map[string]string{"email": seedAdminEmail, "password": seedAdminPassword}), "", "application/json")
	decode(t, resp, &login)
	resp = performRequest(r, http.MethodDelete, "/api/users/"+email, nil, login.Token, "")
	if resp.Code != http.StatusOK {
		t.Fatalf("delete user failed status=%d body=%s", resp.Code, resp.Body.String())
	}
}

func TestUpdateOfDeletedRowIsNotFound(t *testing.T) {
	_, s := setupDBServer(t)
	ctx := context.Background()
	repo := store.NewTransactions(s.db)
	tx := models.Transaction{
		NoKwitansi:      fmt.Sprintf("T%d", time.Now().UnixNano()),
		DiterimaDari:    "Budi",
		UntukPembayaran: "DP",
		Jumlah:          decimal.NewFromInt(1000),
		Tanggal:         models.NewDate(time.Now()),
	}
	if err := repo.Insert(ctx, &tx); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Delete(ctx, tx.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	tx.DiterimaDari = "Sari"
	if err := repo.Update(ctx, &tx); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
	if _, err := repo.FindByID(ctx, tx.ID); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("deleted row came back: %v", err)
	}
}

func TestMigrateCommand(t *testing.T) {
	if os.Getenv("DB_DSN_TEST") != "1" {
		t.Skip("integration tests are disabled; set DB_DSN_TEST=1 to enable")
	}
	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if _, err := openDB(cfg, zap.NewNop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}
