package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Deploy   DeployConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
	// FlashSecret signs the one-shot flash cookie set on settings saves.
	FlashSecret string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string
	DSN      string
	MaxConns int
	MinConns int
}

// AuthConfig holds JWT verification configuration
type AuthConfig struct {
	JWKSURL  string
	Issuer   string
	Audience string
}

// DeployConfig holds deployment trigger configuration
type DeployConfig struct {
	// Registry is the image registry prefix, e.g. "registry.launchpad.dev".
	Registry string
	// EncryptionKey is the 32-byte base64-encoded AES key for env var values.
	EncryptionKey []byte
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// .env file is optional
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 120),
			FlashSecret:  getEnv("FLASH_SECRET", ""),
		},
		Database: DatabaseConfig{
			Driver:   getEnv("DB_DRIVER", "postgres"),
			DSN:      getEnv("DB_DSN", "postgres://localhost:5432/launchpad?sslmode=disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 5),
		},
		Auth: AuthConfig{
			JWKSURL:  getEnv("AUTH_JWKS_URL", ""),
			Issuer:   getEnv("AUTH_ISSUER", ""),
			Audience: getEnv("AUTH_AUDIENCE", "launchpad-core"),
		},
		Deploy: DeployConfig{
			Registry: getEnv("DEPLOY_REGISTRY", "registry.launchpad.local"),
		},
	}

	if keyB64 := getEnv("ENCRYPTION_KEY", ""); keyB64 != "" {
		key, err := base64.StdEncoding.DecodeString(keyB64)
		if err != nil {
			return nil, fmt.Errorf("failed to decode ENCRYPTION_KEY: %w", err)
		}
		config.Deploy.EncryptionKey = key
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Auth.JWKSURL == "" {
		return fmt.Errorf("AUTH_JWKS_URL is required")
	}
	if c.Auth.Issuer == "" {
		return fmt.Errorf("AUTH_ISSUER is required")
	}
	if c.Server.FlashSecret == "" {
		return fmt.Errorf("FLASH_SECRET is required")
	}
	if len(c.Deploy.EncryptionKey) != 32 {
		return fmt.Errorf("ENCRYPTION_KEY must be a 32-byte base64-encoded key (got %d bytes)", len(c.Deploy.EncryptionKey))
	}
	return nil
}

// GetServerAddress returns the server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt gets an environment variable as integer with a fallback value
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}
