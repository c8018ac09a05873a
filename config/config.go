package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults used when the environment does not provide a value
const (
	DefaultAccessTokenExpireMinutes = 1440
	DefaultJWTIssuer                = "order-tracking-api"
	DefaultJWTAudience              = "order-tracking-clients"

	developmentJWTSecret = "dev-only-change-me"
)

// Config holds all application configuration.
// It is built once at startup and never mutated afterwards.
type Config struct {
	DatabaseURL              string
	Port                     string
	GoEnv                    string
	JWTSecret                string
	JWTIssuer                string
	JWTAudience              string
	AccessTokenExpireMinutes int
	CORSAllowedOrigins       []string
	LogLevel                 string
}

var current *Config

// Load loads the configuration from environment variables
// It automatically determines which .env file to load based on GO_ENV
func Load() (*Config, error) {
	// Determine which environment file to load
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Try to load environment-specific file first
	envFile := fmt.Sprintf(".env.%s", env)
	if err := godotenv.Load(envFile); err != nil {
		// If environment-specific file doesn't exist, try .env
		if err := godotenv.Load(); err != nil {
			// Environment variables may be set directly by the platform
			log.Printf("No .env file found, using system environment variables")
		}
	} else {
		log.Printf("Loaded configuration from %s", envFile)
	}

	expireMinutes, err := getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", DefaultAccessTokenExpireMinutes)
	if err != nil {
		return nil, err
	}

	config := &Config{
		DatabaseURL:              getEnv("DATABASE_URL", ""),
		Port:                     getEnv("PORT", "8080"),
		GoEnv:                    getEnv("GO_ENV", "development"),
		JWTSecret:                getEnv("JWT_SECRET", ""),
		JWTIssuer:                getEnv("JWT_ISSUER", DefaultJWTIssuer),
		JWTAudience:              getEnv("JWT_AUDIENCE", DefaultJWTAudience),
		AccessTokenExpireMinutes: expireMinutes,
		CORSAllowedOrigins:       splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		LogLevel:                 getEnv("LOG_LEVEL", "info"),
	}

	// Local runs get a throwaway secret so the server can start without setup
	if config.JWTSecret == "" && (config.IsDevelopment() || config.IsTest()) {
		log.Printf("JWT_SECRET not set, using development secret")
		config.JWTSecret = developmentJWTSecret
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	current = config
	return config, nil
}

// Validate checks that all required configuration values are set
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.AccessTokenExpireMinutes <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive, got %d", c.AccessTokenExpireMinutes)
	}
	if c.JWTIssuer == "" || c.JWTAudience == "" {
		return fmt.Errorf("JWT_ISSUER and JWT_AUDIENCE must not be empty")
	}
	return nil
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GoEnv == "production"
}

// IsTest returns true if the application is running in test mode
func (c *Config) IsTest() bool {
	return c.GoEnv == "test"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GoEnv == "development"
}

// GetDatabaseURL returns the database URL
func (c *Config) GetDatabaseURL() string {
	return c.DatabaseURL
}

// AccessTokenTTL returns the lifetime of an issued access token
func (c *Config) AccessTokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// GetConfig returns the configuration produced by the last successful Load
func GetConfig() *Config {
	return current
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
