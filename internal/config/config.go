package config

import (
	"fmt"
	"os"
)

// Config holds application configuration
type Config struct {
	Port        string
	DatabaseURL string
	SQLitePath  string
	LogLevel    string
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
}

// NewConfig loads configuration from environment variables.
// DATABASE_URL selects Postgres; when it is empty the server falls back
// to a local SQLite file at SQLITE_PATH.
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", "data/inkpress.db"),
		LogLevel:    getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:   getEnv("JWT_SECRET", ""),
		JWTIssuer:   getEnv("JWT_ISSUER", "inkpress"),
		JWTAudience: getEnv("JWT_AUDIENCE", "inkpress-client"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
