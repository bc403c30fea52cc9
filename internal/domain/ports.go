package domain

import (
	"context"

	"github.com/secrets/internal/db"
)

// ============================================================================
// Primary Ports (Application Use Cases)
// ============================================================================

// AccountService defines the use cases for creating and authenticating users
type AccountService interface {
	// Register creates a local account; the username doubles as the email
	Register(ctx context.Context, req RegisterRequest) (*db.User, error)
	// Authenticate checks a local username/password pair
	Authenticate(ctx context.Context, req LoginRequest) (*db.User, error)
	// ResolveOAuthUser returns the user for a provider profile, creating it on first login
	ResolveOAuthUser(ctx context.Context, profile OAuthProfile) (*db.User, bool, error)
	GetUser(ctx context.Context, userID string) (*db.User, error)
}

// SecretService defines the use cases around submitted secrets
type SecretService interface {
	SubmitSecret(ctx context.Context, userID, secret string) error
	ListSecrets(ctx context.Context) ([]string, error)
}

// ============================================================================
// Request / Value Objects
// ============================================================================

// RegisterRequest is the local registration form
type RegisterRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// LoginRequest is the local login form
type LoginRequest struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// SubmitSecretRequest is the secret submission form. An empty secret is
// accepted and stored as-is.
type SubmitSecretRequest struct {
	Secret string `form:"secret"`
}

// OAuthProfile is the identity a provider returned after a successful handshake
type OAuthProfile struct {
	Provider    string
	ID          string
	DisplayName string
	Email       string
}
