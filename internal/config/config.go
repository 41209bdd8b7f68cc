package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort string

	// Database settings. DatabaseType selects the dialect (sqlite, postgres,
	// mysql); DatabasePath is used for sqlite, DatabaseURL for the others.
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	// Namespace scopes every document-store key, so several deployments can
	// share one database.
	Namespace string

	SessionDuration time.Duration
	SessionSecret   string

	// TokenSecret signs and verifies custom sign-in tokens. Empty disables
	// custom-token sign-in.
	TokenSecret string

	// Google OAuth sign-in. Empty client ID disables the provider.
	GoogleClientID       string
	GoogleClientSecret   string
	OAuthRedirectBaseURL string

	// Remote feedback endpoint for speaking practice. Empty API key switches
	// the app to canned feedback.
	FeedbackEndpoint string
	FeedbackAPIKey   string

	// Email settings for the curriculum-completion mail (Amazon SES).
	// Empty SESFromEmail disables the email service.
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string

	UploadMaxSize   int64
	StaticFilesPath string
	TemplatesPath   string
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./lingodrill.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		Namespace: getEnv("APP_NAMESPACE", "lingodrill-default"),

		SessionDuration: getDuration("SESSION_DURATION", 24*time.Hour),
		SessionSecret:   getEnv("SESSION_SECRET", ""),
		TokenSecret:     getEnv("TOKEN_SECRET", ""),

		GoogleClientID:       getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret:   getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectBaseURL: getEnv("OAUTH_REDIRECT_BASE_URL", ""),

		FeedbackEndpoint: getEnv("FEEDBACK_ENDPOINT", ""),
		FeedbackAPIKey:   getEnv("FEEDBACK_API_KEY", ""),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "LingoDrill"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),

		UploadMaxSize:   getInt64("UPLOAD_MAX_SIZE", 5*1024*1024), // 5MB
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),
		TemplatesPath:   getEnv("TEMPLATES_PATH", "./internal/templates"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration reads a duration environment variable or returns a default value
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s %q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}

// getInt64 reads an integer environment variable or returns a default value
func getInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		log.Printf("Warning: invalid %s %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
