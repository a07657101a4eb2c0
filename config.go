package main

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config is read from the environment (and ./.env, see main).
type Config struct {
	Port        string
	DSN         string
	AutoMigrate bool
	JWTSecret   []byte
	TokenTTL    time.Duration
	RefreshTTL  time.Duration
	UploadBase  string
	RequireAuth bool
	CORSOrigins []string
	Production  bool
}

func loadConfig() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "4000"),
		DSN:         os.Getenv("DB_DSN"),
		AutoMigrate: getBool("DB_AUTO_MIGRATE", true),
		UploadBase:  getEnv("UPLOAD_BASE", "uploads"),
		RequireAuth: getBool("REQUIRE_AUTH", true),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "*")),
		Production:  strings.EqualFold(os.Getenv("APP_ENV"), "production"),
	}
	if cfg.DSN == "" {
		return cfg, fmt.Errorf("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if cfg.Production {
			return cfg, fmt.Errorf("JWT_SECRET must be set when APP_ENV=production")
		}
		secret = "dev-insecure-secret-change" // development fallback
	}
	cfg.JWTSecret = []byte(secret)

	var err error
	if cfg.TokenTTL, err = time.ParseDuration(getEnv("JWT_TTL", "8h")); err != nil {
		return cfg, fmt.Errorf("JWT_TTL: %w", err)
	}
	if cfg.RefreshTTL, err = time.ParseDuration(getEnv("REFRESH_TTL", "720h")); err != nil {
		return cfg, fmt.Errorf("REFRESH_TTL: %w", err)
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getBool treats false/0/no (any case) as false and anything else set as true.
func getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	switch strings.ToLower(v) {
	case "false", "0", "no":
		return false
	}
	return true
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
