// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	App       AppConfig
	Documents DocumentsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// DatabaseConfig selects the driver and its connection settings.
type DatabaseConfig struct {
	Driver   string // postgres | sqlite
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	Path     string // sqlite file
	Debug    bool
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev                bool
	Migrations         bool
	Seed               bool
	LogLevel           string
	SessionSecret      string
	PermissionCacheTTL time.Duration
}

// DocumentsConfig drives document generation.
type DocumentsConfig struct {
	EnrichmentSource  string // static | db
	PreviewTTL        time.Duration
	DefaultPageFormat string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	EnrichmentStatic = "static"
	EnrichmentDB     = "db"
)

// DSN returns the PostgreSQL connection string in key=value format.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// URL returns the PostgreSQL connection string in URL format.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", DriverPostgres),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "hebergement"),
			Password: getEnv("DB_PASSWORD", "hebergement123"),
			DBName:   getEnv("DB_NAME", "hebergement"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			Path:     getEnv("DB_PATH", "hebergement.db"),
			Debug:    getEnvBool("DB_DEBUG", false),
		},
		App: AppConfig{
			Dev:                getEnvBool("DEV", true),
			Migrations:         getEnvBool("MIGRATIONS", false),
			Seed:               getEnvBool("DB_SEED", false),
			LogLevel:           getEnv("LOG_LEVEL", "info"),
			SessionSecret:      getEnv("SESSION_SECRET", "devsessionsecret"),
			PermissionCacheTTL: getEnvDuration("PERMISSION_CACHE_TTL", 5*time.Minute),
		},
		Documents: DocumentsConfig{
			EnrichmentSource:  getEnv("ENRICHMENT_SOURCE", EnrichmentStatic),
			PreviewTTL:        getEnvDuration("PREVIEW_TTL", 15*time.Minute),
			DefaultPageFormat: getEnv("DEFAULT_PAGE_FORMAT", "A4"),
		},
	}
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}

// getEnvDuration parses Go durations ("90s", "15m"); invalid values keep
// the default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}
