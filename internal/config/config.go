// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Session     SessionConfig
	Auth        AuthConfig
	Upload      UploadConfig
	Public      PublicConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Path     string
	LogLevel string
}

type SessionConfig struct {
	// Fallback timeout in minutes when the sesion_timeout settings row is
	// missing.
	TimeoutMinutes int
}

type AuthConfig struct {
	JWTSecret    string
	TokenTTL     int // hours
	StaffUser    string
	StaffPassKey string // bcrypt hash of the staff password
}

type UploadConfig struct {
	Dir        string
	MaxSizeMB  int
	PublicPath string
}

type PublicConfig struct {
	// Base URL encoded into table QR codes, e.g. https://menu.example.com
	BaseURL string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Path:     getEnv("DB_PATH", "menu.db"),
			LogLevel: getEnv("DB_LOG_LEVEL", "silent"),
		},
		Session: SessionConfig{
			TimeoutMinutes: getEnvAsInt("SESSION_TIMEOUT_MINUTES", 10),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			TokenTTL:     getEnvAsInt("JWT_TTL_HOURS", 12),
			StaffUser:    getEnv("STAFF_USER", "staff"),
			StaffPassKey: getEnv("STAFF_PASSWORD_HASH", ""),
		},
		Upload: UploadConfig{
			Dir:        getEnv("UPLOAD_DIR", "./uploads"),
			MaxSizeMB:  getEnvAsInt("UPLOAD_MAX_SIZE_MB", 5),
			PublicPath: getEnv("UPLOAD_PUBLIC_PATH", "/uploads"),
		},
		Public: PublicConfig{
			BaseURL: getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "your-secret-key-change-in-production" && c.Environment == "production" {
		return fmt.Errorf("JWT secret key must be changed in production")
	}

	if c.Auth.StaffPassKey == "" && c.Environment == "production" {
		return fmt.Errorf("staff password hash is required in production")
	}

	if c.Session.TimeoutMinutes <= 0 {
		return fmt.Errorf("session timeout must be positive")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
