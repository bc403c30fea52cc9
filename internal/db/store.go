package db

import (
	"context"
	"strings"

	"github.com/secrets/internal/config"
)

// Store persists users and their secrets
type Store interface {
	// CreateUser inserts a new user, returning ErrDuplicate when an identity is taken
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	// GetUserByProviderID finds a user by its Google or Facebook identifier
	GetUserByProviderID(ctx context.Context, provider, providerID string) (*User, error)
	// UpdateSecret overwrites the user's secret, returning ErrNotFound for unknown users
	UpdateSecret(ctx context.Context, id, secret string) error
	// ListSecrets returns every non-null secret, oldest update first
	ListSecrets(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}

// Open picks a backend from the URL scheme: mongodb:// and mongodb+srv:// use
// MongoDB, postgres:// and postgresql:// use PostgreSQL, anything else is
// treated as a SQLite file path.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	switch BackendName(cfg.URL) {
	case "mongodb":
		return InitMongo(ctx, cfg.URL, cfg.MongoDBName)
	case "postgres":
		return InitPostgres(ctx, cfg.URL)
	default:
		return Init(cfg.URL)
	}
}

// BackendName returns a short label for the backend Open would choose
func BackendName(url string) string {
	switch {
	case strings.HasPrefix(url, "mongodb://"), strings.HasPrefix(url, "mongodb+srv://"):
		return "mongodb"
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return "postgres"
	default:
		return "sqlite"
	}
}
