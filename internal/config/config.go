package config

import (
	"os"
	"strings"
)

// Config holds the application configuration
type Config struct {
	ServerAddress string
	Environment   string
	Database      DatabaseConfig
	Session       SessionConfig
	Google        OAuthConfig
	Facebook      OAuthConfig
}

// DatabaseConfig holds user store configuration
type DatabaseConfig struct {
	URL         string // mongodb://..., postgres://... or a SQLite file path
	MongoDBName string
}

// SessionConfig holds session cookie configuration
type SessionConfig struct {
	Secret       string
	SecureCookie bool
	BaseURL      string // Base URL for OAuth callbacks (e.g., http://localhost:3000)
}

// OAuthConfig holds the client credentials of one OAuth provider
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
}

// Enabled reports whether the provider has credentials configured
func (c OAuthConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Load loads configuration from environment variables with defaults
func Load() (*Config, error) {
	port := getEnv("PORT", "3000")
	baseURL := strings.TrimSuffix(getEnv("BASE_URL", "http://localhost:"+port), "/")

	// MONGODB_URL is what older deployments set
	dbURL := getEnv("DATABASE_URL", getEnv("MONGODB_URL", "./data/secrets.db"))

	return &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":"+port),
		Environment:   getEnv("ENVIRONMENT", "development"),
		Database: DatabaseConfig{
			URL:         dbURL,
			MongoDBName: getEnv("MONGODB_DATABASE", "userDB"),
		},
		Session: SessionConfig{
			Secret:       getEnv("SECRET", "defaultSecret"),
			SecureCookie: getEnv("SECURE_COOKIES", "false") == "true",
			BaseURL:      baseURL,
		},
		Google: OAuthConfig{
			ClientID:     os.Getenv("CLIENT_ID"),
			ClientSecret: os.Getenv("CLIENT_SECRETS"),
			CallbackURL:  getEnv("GOOGLE_CALLBACK_URL", baseURL+"/auth/google/secrets"),
		},
		Facebook: OAuthConfig{
			ClientID:     os.Getenv("FACEBOOK_APP_ID"),
			ClientSecret: os.Getenv("FACEBOOK_APP_SECRET"),
			CallbackURL:  getEnv("FACEBOOK_CALLBACK_URL", baseURL+"/auth/facebook/secrets"),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
