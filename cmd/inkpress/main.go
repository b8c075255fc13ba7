package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/inkpress-dev/inkpress/db"
	"github.com/inkpress-dev/inkpress/internal/auth"
	"github.com/inkpress-dev/inkpress/internal/config"
	"github.com/inkpress-dev/inkpress/internal/router"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using environment variables")
	}

	cfg, err := config.NewConfig()

	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	if err := auth.InitJWT(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience); err != nil {
		logrus.Fatalf("Failed to initialize JWT: %v", err)
	}

	if cfg.DatabaseURL != "" {
		err = db.ConnectPostgres(cfg.DatabaseURL)
	} else {
		if err = os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o755); err != nil {
			logrus.Fatalf("Failed to create data directory: %v", err)
		}
		err = db.ConnectSQLite(fmt.Sprintf("file:%s?_foreign_keys=on", cfg.SQLitePath))
	}

	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	if err := db.SeedDatabase(); err != nil {
		logrus.Fatalf("Failed to seed database: %v", err)
	}

	r := router.NewRouter()

	logrus.Infof("Listening on :%s", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.Fatalf("Failed to start server: %v", err)
	}
}
