package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// MongoDB
	MongoURI    string
	MongoDbName string

	// JWT
	JwtSecret string
	JwtTTL    time.Duration

	// Server
	ApiPort        string
	RequestTimeout time.Duration

	// CORS
	AllowedOrigins []string

	// Uploads
	StorageDriver   string // "local" or "s3"
	UploadDir       string
	MaxUploadFiles  int
	MaxUploadSizeMB int

	// AWS S3 (used when StorageDriver == "s3")
	AwsAccessKeyID     string
	AwsSecretAccessKey string
	AwsRegion          string
	AwsS3Bucket        string
	ImageBaseURL       string

	// App Defaults
	AppName            string
	DefaultAgentAvatar string
	DefaultPageSize    int
	MaxPageSize        int
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
	cfg.MongoDbName = getEnv("MONGO_DB_NAME", "homeverse")
	cfg.JwtSecret, err = getRequiredEnv("JWT_SECRET")
	if err != nil {
		return nil, err
	}
	cfg.ApiPort = getEnv("PORT", "5000")
	cfg.StorageDriver = getEnv("STORAGE_DRIVER", "local")
	cfg.UploadDir = getEnv("UPLOAD_DIR", "uploads")
	cfg.AwsAccessKeyID = getEnv("AWS_ACCESS_KEY_ID", "")
	cfg.AwsSecretAccessKey = getEnv("AWS_SECRET_ACCESS_KEY", "")
	cfg.AwsRegion = getEnv("AWS_REGION", "")
	cfg.AwsS3Bucket = getEnv("AWS_S3_BUCKET", "")
	cfg.ImageBaseURL = getEnv("IMAGE_BASE_URL", "")
	cfg.AppName = getEnv("APP_NAME", "HomeVerse")
	cfg.DefaultAgentAvatar = getEnv("DEFAULT_AGENT_AVATAR", "/assets/images/author.jpg")

	if origins := getEnv("ALLOWED_ORIGINS", ""); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
			}
		}
	}

	jwtTTLSeconds, err := strconv.ParseInt(getEnv("JWT_TTL_SECONDS", "86400"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL_SECONDS: %w", err)
	}
	cfg.JwtTTL = time.Duration(jwtTTLSeconds) * time.Second

	requestTimeoutSeconds, err := strconv.ParseInt(getEnv("REQUEST_TIMEOUT_SECONDS", "30"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT_SECONDS: %w", err)
	}
	cfg.RequestTimeout = time.Duration(requestTimeoutSeconds) * time.Second

	cfg.MaxUploadFiles, err = strconv.Atoi(getEnv("MAX_UPLOAD_FILES", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_FILES: %w", err)
	}

	cfg.MaxUploadSizeMB, err = strconv.Atoi(getEnv("MAX_UPLOAD_SIZE_MB", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_UPLOAD_SIZE_MB: %w", err)
	}

	cfg.DefaultPageSize, err = strconv.Atoi(getEnv("DEFAULT_PAGE_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_PAGE_SIZE: %w", err)
	}

	cfg.MaxPageSize, err = strconv.Atoi(getEnv("MAX_PAGE_SIZE", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_PAGE_SIZE: %w", err)
	}

	if cfg.StorageDriver == "s3" && cfg.AwsS3Bucket == "" {
		return nil, fmt.Errorf("AWS_S3_BUCKET is required when STORAGE_DRIVER=s3")
	}

	return cfg, nil
}
