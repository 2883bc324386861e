package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database     DatabaseConfig
	JWT          JWTConfig
	App          AppConfig
	XRPL         XRPLConfig
	Disbursement DisbursementConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// XRPLConfig holds the ledger node and hot wallet configuration
type XRPLConfig struct {
	RPCURL  string
	Account string
	Secret  string
	Timeout time.Duration
}

// DisbursementConfig tunes the batch payment orchestrator
type DisbursementConfig struct {
	ChunkSize    int
	ChunkPause   time.Duration
	PollAttempts int
	PollInterval time.Duration
}

func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments; the process env
	// is authoritative there.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "shiftledger"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// XRPL configuration
	xrplTimeout, err := time.ParseDuration(getEnv("XRPL_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid XRPL_TIMEOUT: %w", err)
	}

	config.XRPL = XRPLConfig{
		RPCURL:  getEnv("XRPL_RPC_URL", "https://s.altnet.rippletest.net:51234"),
		Account: getEnv("XRPL_ACCOUNT", ""),
		Secret:  getEnv("XRPL_SECRET", ""),
		Timeout: xrplTimeout,
	}

	// Disbursement configuration
	chunkSize, err := strconv.Atoi(getEnv("DISBURSE_CHUNK_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DISBURSE_CHUNK_SIZE: %w", err)
	}
	chunkPause, err := time.ParseDuration(getEnv("DISBURSE_CHUNK_PAUSE", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DISBURSE_CHUNK_PAUSE: %w", err)
	}
	pollAttempts, err := strconv.Atoi(getEnv("DISBURSE_POLL_ATTEMPTS", "40"))
	if err != nil {
		return nil, fmt.Errorf("invalid DISBURSE_POLL_ATTEMPTS: %w", err)
	}
	pollInterval, err := time.ParseDuration(getEnv("DISBURSE_POLL_INTERVAL", "3s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DISBURSE_POLL_INTERVAL: %w", err)
	}

	config.Disbursement = DisbursementConfig{
		ChunkSize:    chunkSize,
		ChunkPause:   chunkPause,
		PollAttempts: pollAttempts,
		PollInterval: pollInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.XRPL.Account == "" {
		return fmt.Errorf("XRPL_ACCOUNT is required")
	}
	if c.XRPL.Secret == "" {
		return fmt.Errorf("XRPL_SECRET is required")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
