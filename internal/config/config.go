package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// EmailMode selects which email.Sender implementation the service runs with.
const (
	EmailModeSMTP  = "smtp"
	EmailModeFile  = "file"
	EmailModeRedis = "redis"
	EmailModeLog   = "log"
)

// Config holds all configuration for the application.
type Config struct {
	// MongoDB
	MongoURI    string
	MongoDbName string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// JWT
	JwtSecret string
	JwtTTL    time.Duration

	// Server
	ApiPort string

	// Email
	EmailMode       string
	EmailFilePath   string // used when EmailMode == "file"
	EmailMirrorFile string // optional: mirror every outgoing email to this file
	SmtpHost        string
	SmtpPort        int
	SmtpUsername    string
	SmtpPassword    string
	SmtpFromAddress string

	// Site identity used by placeholder rendering
	SiteTitle string
	LoginURL  string

	// Reset behaviour
	PasswordLength int
	UploadDir      string // base directory for the password reset CSV logs

	// Anti-forgery nonces
	NonceTTL time.Duration

	// Rate Limiting Defaults
	RateLimitBucketSize int
	RateLimitRefillRate int // tokens per second
}

// Load configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file, ignoring errors if it doesn't exist
	godotenv.Load()

	cfg := &Config{}

	var err error

	// Helper function to get env var or default
	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return defaultValue
	}

	// Helper function to get required env var
	getRequiredEnv := func(key string) (string, error) {
		value, exists := os.LookupEnv(key)
		if !exists {
			return "", fmt.Errorf("missing required environment variable: %s", key)
		}
		return value, nil
	}

	cfg.MongoURI, err = getRequiredEnv("MONGO_URI")
	if err != nil {
		return nil, err
	}
	cfg.MongoDbName = getEnv("MONGO_DB_NAME", "bulkreset")
	cfg.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.JwtSecret, err = getRequiredEnv("JWT_SECRET")
	if err != nil {
		return nil, err
	}
	cfg.ApiPort = getEnv("API_PORT", "8080")

	cfg.EmailMode = getEnv("EMAIL_MODE", EmailModeSMTP)
	cfg.EmailFilePath = getEnv("EMAIL_FILE_PATH", "")
	cfg.EmailMirrorFile = getEnv("EMAIL_MIRROR_FILE", "")
	cfg.SmtpHost = getEnv("SMTP_HOST", "")
	cfg.SmtpUsername = getEnv("SMTP_USERNAME", "")
	cfg.SmtpPassword = getEnv("SMTP_PASSWORD", "")
	cfg.SmtpFromAddress = getEnv("SMTP_FROM_ADDRESS", "noreply@example.com")

	cfg.SiteTitle = getEnv("SITE_TITLE", "Smart Bulk Password Reset")
	cfg.LoginURL = getEnv("LOGIN_URL", "https://example.com/my-account/")
	cfg.UploadDir = getEnv("UPLOAD_DIR", "uploads")

	cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	jwtTTLSeconds, err := strconv.ParseInt(getEnv("JWT_TTL_SECONDS", "3600"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL_SECONDS: %w", err)
	}
	cfg.JwtTTL = time.Duration(jwtTTLSeconds) * time.Second

	cfg.SmtpPort, err = strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	cfg.PasswordLength, err = strconv.Atoi(getEnv("PASSWORD_LENGTH", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid PASSWORD_LENGTH: %w", err)
	}
	if cfg.PasswordLength < 12 {
		return nil, fmt.Errorf("PASSWORD_LENGTH must be at least 12, got %d", cfg.PasswordLength)
	}

	nonceTTLSeconds, err := strconv.ParseInt(getEnv("NONCE_TTL_SECONDS", "600"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid NONCE_TTL_SECONDS: %w", err)
	}
	cfg.NonceTTL = time.Duration(nonceTTLSeconds) * time.Second

	cfg.RateLimitBucketSize, err = strconv.Atoi(getEnv("RATE_LIMIT_BUCKET_SIZE", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BUCKET_SIZE: %w", err)
	}
	cfg.RateLimitRefillRate, err = strconv.Atoi(getEnv("RATE_LIMIT_REFILL_RATE", "4"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REFILL_RATE: %w", err)
	}

	return cfg, nil
}
