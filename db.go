package main

import (
	"fmt"
	"os"
	"time"

	"aqso/models"
	"aqso/store"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	seedAdminEmail    = "admin@aqso.local"
	seedAdminPassword = "admin123"
)

func openDB(cfg Config, log *zap.Logger) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{Logger: gormLogger(log)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect postgres database: %w", err)
	}
	if cfg.AutoMigrate {
		migrate(gdb, log)
	}
	if err := seedDB(gdb, log); err != nil {
		return nil, err
	}
	ensureUploadBase(cfg.UploadBase, log)
	return gdb, nil
}

// gormLogger sends gorm's warnings, errors and slow queries to log.
func gormLogger(log *zap.Logger) logger.Interface {
	return logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// migrate runs AutoMigrate model by model so a failure on one (e.g. missing
// permissions) does not block the others.
func migrate(gdb *gorm.DB, log *zap.Logger) {
	// roles first so the users FK can be applied
	for _, m := range []struct {
		table string
		model any
	}{
		{"roles", &models.Role{}},
		{"users", &models.User{}},
		{"profiles", &models.Profile{}},
		{"refresh_tokens", &models.RefreshToken{}},
		{"transactions", &models.Transaction{}},
		{"customers", &models.Customer{}},
	} {
		if err := gdb.AutoMigrate(m.model); err != nil {
			log.Warn("migration warning", zap.String("table", m.table), zap.Error(err))
		}
	}
}

func seedDB(gdb *gorm.DB, log *zap.Logger) error {
	if err := store.SeedRoles(gdb); err != nil {
		return err
	}
	var count int64
	if err := gdb.Model(&models.User{}).Where("email = ?", seedAdminEmail).Count(&count).Error; err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}
	hashed, err := store.HashPassword(seedAdminPassword)
	if err != nil {
		return err
	}
	if _, err := store.CreateUser(gdb, seedAdminEmail, hashed, models.RoleAdmin, "Administrator"); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	log.Info("seeded admin user", zap.String("email", seedAdminEmail))
	return nil
}

func ensureUploadBase(base string, log *zap.Logger) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		log.Warn("failed to create upload base dir", zap.String("dir", base), zap.Error(err))
	}
}
