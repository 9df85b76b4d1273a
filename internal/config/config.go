package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

const insecureDevSecret = "dev-secret-change-me"

// Config holds the application configuration.
type Config struct {
	ServerPort     int           `validate:"min=1,max=65535"`
	AppEnv         string        `validate:"oneof=development production test"`
	LogLevel       string        `validate:"oneof=trace debug info warn error"`
	StoreDriver    string        `validate:"oneof=sqlite mongo"`
	DatabasePath   string        `validate:"required_if=StoreDriver sqlite"`
	MongoURI       string        `validate:"required_if=StoreDriver mongo"`
	MongoDatabase  string        `validate:"required_if=StoreDriver mongo"`
	JWTSecret      string        `validate:"required"`
	TokenTTL       time.Duration `validate:"gt=0"`
	BcryptCost     int           `validate:"min=4,max=31"`
	AllowedOrigins []string      `validate:"dive,required"`
	RequestTimeout time.Duration `validate:"gt=0"`
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// UsesInsecureSecret reports whether the built-in development secret is in use.
func (c *Config) UsesInsecureSecret() bool {
	return c.JWTSecret == insecureDevSecret
}

// Load loads configuration from a .env file (if present) and environment
// variables, falling back to defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	tokenTTL, err := time.ParseDuration(getEnv("TOKEN_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	bcryptCost, err := strconv.Atoi(getEnv("BCRYPT_COST", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}
	requestTimeout, err := time.ParseDuration(getEnv("REQUEST_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	cfg := &Config{
		ServerPort:     port,
		AppEnv:         getEnv("APP_ENV", "development"),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		StoreDriver:    getEnv("STORE_DRIVER", DriverSQLite),
		DatabasePath:   getEnv("DATABASE_PATH", "./interview-vault.db"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "interviewvault"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenTTL:       tokenTTL,
		BcryptCost:     bcryptCost,
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		RequestTimeout: requestTimeout,
	}

	if cfg.JWTSecret == "" && !cfg.IsProduction() {
		cfg.JWTSecret = insecureDevSecret
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Helper to get an environment variable with a default value. Empty values
// count as unset.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
