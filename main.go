package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// ./.env is optional; variables already set win
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := newLogger(cfg)
	defer log.Sync()

	// `./aqso migrate` runs AutoMigrate and seeding then exits.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		cfg.AutoMigrate = true
		if _, err := openDB(cfg, log); err != nil {
			log.Fatal("migrate failed", zap.Error(err))
		}
		log.Info("migration and seeding completed")
		return
	}

	gdb, err := openDB(cfg, log)
	if err != nil {
		log.Fatal("database init failed", zap.Error(err))
	}

	if cfg.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	r := newServer(cfg, gdb, log).router()

	log.Info("listening", zap.String("port", cfg.Port), zap.Bool("require_auth", cfg.RequireAuth))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg Config) *zap.Logger {
	var (
		log *zap.Logger
		err error
	)
	if cfg.Production {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		return zap.NewNop()
	}
	return log
}
