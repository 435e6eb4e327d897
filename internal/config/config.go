// Package config loads runtime settings from the environment.
//
// A .env file in the working directory is read first when present, so local
// development needs no exported variables. Real environment variables always
// win over .env entries.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultPort       = 8080
	DefaultDBDriver   = "sqlite"
	DefaultDBPath     = "data/ncnews.db"
	DefaultLogLevel   = "info"
	DefaultCORSOrigin = "*"
)

// Config holds every setting the server needs.
type Config struct {
	Port        int
	DBDriver    string // "sqlite" or "postgres"
	DBPath      string // SQLite file, or ":memory:"
	DatabaseURL string // PostgreSQL connection string
	LogLevel    slog.Level
	CORSOrigin  string
}

// DSN returns the data source for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "postgres" {
		return c.DatabaseURL
	}
	return c.DBPath
}

// LoadDotEnv copies .env entries into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("config: reading .env: %w", err)
	}
	return nil
}

// FromEnv builds a Config from a lookup function. Tests pass a map-backed
// lookup instead of touching the process environment.
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:        DefaultPort,
		DBDriver:    DefaultDBDriver,
		DBPath:      DefaultDBPath,
		DatabaseURL: getenv("DATABASE_URL"),
		LogLevel:    slog.LevelInfo,
		CORSOrigin:  DefaultCORSOrigin,
	}

	if v := getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			return Config{}, fmt.Errorf("config: invalid PORT %q", v)
		}
		cfg.Port = port
	}

	if v := getenv("DB_DRIVER"); v != "" {
		cfg.DBDriver = strings.ToLower(strings.TrimSpace(v))
	}
	switch cfg.DBDriver {
	case "sqlite":
	case "postgres", "postgresql", "pgx":
		cfg.DBDriver = "postgres"
	default:
		return Config{}, fmt.Errorf("config: invalid DB_DRIVER %q (want sqlite or postgres)", cfg.DBDriver)
	}

	if v := getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if cfg.DBDriver == "postgres" && cfg.DatabaseURL == "" {
		return Config{}, errors.New("config: DATABASE_URL is required when DB_DRIVER=postgres")
	}

	level, err := ParseLevel(getenv("LOG_LEVEL"))
	if err != nil {
		return Config{}, err
	}
	cfg.LogLevel = level

	if v := getenv("CORS_ORIGIN"); v != "" {
		cfg.CORSOrigin = v
	}

	return cfg, nil
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// An empty string is DefaultLogLevel.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		s = DefaultLogLevel
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("config: invalid LOG_LEVEL %q", s)
	}
	return level, nil
}
