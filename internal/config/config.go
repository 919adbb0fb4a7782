// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Client   ClientConfig
	Kitchen  KitchenConfig
	App      AppConfig
}

// ServerConfig holds the fake API's HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
	JWTSecret    string
	TokenTTL     time.Duration
}

// DatabaseConfig selects and configures the fake API's database.
// Driver is "sqlite" (default) or "postgres".
type DatabaseConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// ClientConfig holds what the CLI needs to reach the API. When SessionDB
// is set the session lives in that SQLite file instead of SessionFile.
type ClientConfig struct {
	BaseURL     string
	SessionFile string
	SessionDB   string
	Timeout     time.Duration
	Lang        string
}

// KitchenConfig holds the business thresholds.
type KitchenConfig struct {
	MenuBudgetThreshold      float64
	DashboardBudgetThreshold float64
	CancelPolicy             string
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev  bool
	Seed bool
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == "postgres" {
		return fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
		)
	}
	return d.Path
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8090"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
			JWTSecret:    getEnv("JWT_SECRET", "devjwtsecret"),
			TokenTTL:     time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
			Path:     getEnv("DB_PATH", "stockchef.db"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "stockchef"),
			Password: getEnv("DB_PASSWORD", "stockchef"),
			DBName:   getEnv("DB_NAME", "stockchef"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Client: ClientConfig{
			BaseURL:     strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8090/api"), "/"),
			SessionFile: getEnv("SESSION_FILE", defaultSessionFile()),
			SessionDB:   getEnv("SESSION_DB", ""),
			Timeout:     time.Duration(getEnvInt("API_TIMEOUT", 10)) * time.Second,
			Lang:        getEnv("STOCKCHEF_LANG", "fr"),
		},
		Kitchen: KitchenConfig{
			MenuBudgetThreshold:      getEnvFloat("MENU_BUDGET_THRESHOLD", 4.5),
			DashboardBudgetThreshold: getEnvFloat("DASHBOARD_BUDGET_THRESHOLD", 15.0),
			CancelPolicy:             getEnv("MENU_CANCEL_POLICY", "annule"),
		},
		App: AppConfig{
			Dev:  getEnvBool("DEV", true),
			Seed: getEnvBool("SEED", true),
		},
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".stockchef_session.json"
	}
	return filepath.Join(dir, "stockchef", "session.json")
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

// getEnvFloat returns the float value of an environment variable or a default.
// A decimal comma is accepted.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(strings.Replace(value, ",", ".", 1), 64); err == nil {
			return f
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
