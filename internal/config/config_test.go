package config

import (
	"os"
	"testing"
)

var configEnvKeys = []string{
	"PORT",
	"SERVER_ADDRESS",
	"ENVIRONMENT",
	"DATABASE_URL",
	"MONGODB_URL",
	"MONGODB_DATABASE",
	"SECRET",
	"SECURE_COOKIES",
	"BASE_URL",
	"CLIENT_ID",
	"CLIENT_SECRETS",
	"GOOGLE_CALLBACK_URL",
	"FACEBOOK_APP_ID",
	"FACEBOOK_APP_SECRET",
	"FACEBOOK_CALLBACK_URL",
}

// clearConfigEnv unsets every variable Load reads and restores them when the test ends
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad(t *testing.T) {
	clearConfigEnv(t)

	// Test with default values
	config, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.ServerAddress != ":3000" {
		t.Errorf("Expected ServerAddress to be :3000, got %s", config.ServerAddress)
	}

	if config.Environment != "development" {
		t.Errorf("Expected Environment to be development, got %s", config.Environment)
	}

	if config.Database.URL != "./data/secrets.db" {
		t.Errorf("Expected Database.URL to be ./data/secrets.db, got %s", config.Database.URL)
	}

	if config.Database.MongoDBName != "userDB" {
		t.Errorf("Expected Database.MongoDBName to be userDB, got %s", config.Database.MongoDBName)
	}

	if config.Session.Secret != "defaultSecret" {
		t.Errorf("Expected Session.Secret to be 'defaultSecret', got %s", config.Session.Secret)
	}

	if config.Session.SecureCookie {
		t.Errorf("Expected SecureCookie to be false, got %v", config.Session.SecureCookie)
	}

	if config.Session.BaseURL != "http://localhost:3000" {
		t.Errorf("Expected BaseURL to be 'http://localhost:3000', got %s", config.Session.BaseURL)
	}

	if config.Google.CallbackURL != "http://localhost:3000/auth/google/secrets" {
		t.Errorf("Unexpected Google callback URL %s", config.Google.CallbackURL)
	}

	if config.Facebook.CallbackURL != "http://localhost:3000/auth/facebook/secrets" {
		t.Errorf("Unexpected Facebook callback URL %s", config.Facebook.CallbackURL)
	}

	if config.Google.Enabled() || config.Facebook.Enabled() {
		t.Errorf("Expected OAuth providers to be disabled without credentials")
	}
}

func TestLoadWithCustomEnv(t *testing.T) {
	clearConfigEnv(t)

	os.Setenv("PORT", "9000")
	os.Setenv("ENVIRONMENT", "production")
	os.Setenv("DATABASE_URL", "mongodb://db.internal:27017")
	os.Setenv("MONGODB_DATABASE", "secrets")
	os.Setenv("SECRET", "custom-secret")
	os.Setenv("SECURE_COOKIES", "true")
	os.Setenv("BASE_URL", "https://secrets.example.com/")
	os.Setenv("CLIENT_ID", "google-id")
	os.Setenv("CLIENT_SECRETS", "google-secret")
	os.Setenv("FACEBOOK_APP_ID", "fb-id")
	os.Setenv("FACEBOOK_APP_SECRET", "fb-secret")
	os.Setenv("FACEBOOK_CALLBACK_URL", "https://fb.example.com/cb")

	config, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.ServerAddress != ":9000" {
		t.Errorf("Expected ServerAddress to be :9000, got %s", config.ServerAddress)
	}

	if config.Environment != "production" {
		t.Errorf("Expected Environment to be production, got %s", config.Environment)
	}

	if config.Database.URL != "mongodb://db.internal:27017" {
		t.Errorf("Unexpected Database.URL %s", config.Database.URL)
	}

	if config.Database.MongoDBName != "secrets" {
		t.Errorf("Expected MongoDBName to be secrets, got %s", config.Database.MongoDBName)
	}

	if config.Session.Secret != "custom-secret" {
		t.Errorf("Expected Secret to be 'custom-secret', got %s", config.Session.Secret)
	}

	if !config.Session.SecureCookie {
		t.Errorf("Expected SecureCookie to be true")
	}

	if config.Session.BaseURL != "https://secrets.example.com" {
		t.Errorf("Expected trailing slash to be trimmed, got %s", config.Session.BaseURL)
	}

	if !config.Google.Enabled() {
		t.Errorf("Expected Google to be enabled")
	}

	if config.Google.CallbackURL != "https://secrets.example.com/auth/google/secrets" {
		t.Errorf("Unexpected Google callback URL %s", config.Google.CallbackURL)
	}

	if config.Facebook.CallbackURL != "https://fb.example.com/cb" {
		t.Errorf("Unexpected Facebook callback URL %s", config.Facebook.CallbackURL)
	}
}

func TestLoadMongoURLFallback(t *testing.T) {
	clearConfigEnv(t)
	os.Setenv("MONGODB_URL", "mongodb://legacy:27017")

	config, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Database.URL != "mongodb://legacy:27017" {
		t.Errorf("Expected MONGODB_URL to be used, got %s", config.Database.URL)
	}

	os.Setenv("DATABASE_URL", "postgres://localhost/secrets")
	config, _ = Load()
	if config.Database.URL != "postgres://localhost/secrets" {
		t.Errorf("Expected DATABASE_URL to win, got %s", config.Database.URL)
	}
}

func TestServerAddressOverridesPort(t *testing.T) {
	clearConfigEnv(t)
	os.Setenv("PORT", "4000")
	os.Setenv("SERVER_ADDRESS", "127.0.0.1:5000")

	config, _ := Load()
	if config.ServerAddress != "127.0.0.1:5000" {
		t.Errorf("Expected SERVER_ADDRESS to win, got %s", config.ServerAddress)
	}
	if config.Session.BaseURL != "http://localhost:4000" {
		t.Errorf("Expected BaseURL to use PORT, got %s", config.Session.BaseURL)
	}
}

func TestGetEnv(t *testing.T) {
	// Test with existing env var
	key := "TEST_GET_ENV"
	value := "test-value"
	os.Setenv(key, value)

	result := getEnv(key, "default")
	if result != value {
		t.Errorf("Expected %s, got %s", value, result)
	}

	// Clean up
	os.Unsetenv(key)

	// Test with non-existing env var
	result = getEnv(key, "default")
	if result != "default" {
		t.Errorf("Expected 'default', got %s", result)
	}

	// Test with empty env var
	os.Setenv(key, "")
	result = getEnv(key, "default")
	if result != "default" {
		t.Errorf("Expected 'default' for empty env var, got %s", result)
	}

	// Clean up
	os.Unsetenv(key)
}
