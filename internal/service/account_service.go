package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/secrets/internal/constants"
	"github.com/secrets/internal/db"
	"github.com/secrets/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher hashes and verifies local account passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt
type BcryptHasher struct{ Cost int }

// Hash returns the bcrypt hash of password
func (b BcryptHasher) Hash(password string) (string, error) {
	cost := b.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether password matches hash
func (b BcryptHasher) Verify(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// accountService implements the AccountService interface
type accountService struct {
	store  db.Store
	hasher PasswordHasher
	logger *slog.Logger
}

// NewAccountService creates a new account service using bcrypt at the default cost
func NewAccountService(store db.Store, logger *slog.Logger) domain.AccountService {
	return NewAccountServiceWithHasher(store, BcryptHasher{}, logger)
}

// NewAccountServiceWithHasher creates a new account service with a custom hasher
func NewAccountServiceWithHasher(store db.Store, hasher PasswordHasher, logger *slog.Logger) domain.AccountService {
	return &accountService{
		store:  store,
		hasher: hasher,
		logger: logger,
	}
}

// Register creates a local account
func (s *accountService) Register(ctx context.Context, req domain.RegisterRequest) (*db.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, domain.WrapValidationError("username", errors.New("field is required"))
	}
	if req.Password == "" {
		return nil, domain.WrapValidationError("password", errors.New("field is required"))
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := db.NewUser(username, constants.ProviderLocal)
	user.Email = username
	user.PasswordHash = hash

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, domain.WrapUserAlreadyExists(username, err)
		}
		return nil, domain.WrapDatabaseOperation("create user", err)
	}

	s.logger.InfoContext(ctx, "local user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate checks a local username/password pair
func (s *accountService) Authenticate(ctx context.Context, req domain.LoginRequest) (*db.User, error) {
	username := strings.TrimSpace(req.Username)

	user, err := s.store.GetUserByEmail(ctx, username)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, domain.WrapDatabaseOperation("get user by email", err)
	}

	// OAuth accounts carry an email but no local credential
	if user.PasswordHash == "" {
		s.logger.DebugContext(ctx, "local login attempted on oauth account", "user_id", user.ID, "provider", user.Provider)
		return nil, domain.ErrInvalidCredentials
	}

	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// ResolveOAuthUser returns the user for a provider profile, creating it on
// first login. The boolean reports whether a new record was created.
func (s *accountService) ResolveOAuthUser(ctx context.Context, profile domain.OAuthProfile) (*db.User, bool, error) {
	if profile.ID == "" {
		return nil, false, domain.WrapOAuthFailed(profile.Provider, errors.New("profile has no id"))
	}
	if profile.Provider != constants.ProviderGoogle && profile.Provider != constants.ProviderFacebook {
		return nil, false, domain.WrapOAuthFailed(profile.Provider, errors.New("unsupported provider"))
	}

	existing, err := s.store.GetUserByProviderID(ctx, profile.Provider, profile.ID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, db.ErrNotFound) {
		return nil, false, domain.WrapDatabaseOperation("get user by provider id", err)
	}

	user := db.NewUser(profile.DisplayName, profile.Provider)
	user.Email = strings.TrimSpace(profile.Email)
	switch profile.Provider {
	case constants.ProviderGoogle:
		user.GoogleID = profile.ID
	case constants.ProviderFacebook:
		user.FacebookID = profile.ID
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if !errors.Is(err, db.ErrDuplicate) {
			return nil, false, domain.WrapDatabaseOperation("create user", err)
		}

		// A concurrent callback may have created the same identity
		if existing, lookupErr := s.store.GetUserByProviderID(ctx, profile.Provider, profile.ID); lookupErr == nil {
			return existing, false, nil
		}

		// Otherwise the email belongs to another account; providers are not linked
		return nil, false, domain.WrapUserAlreadyExists(user.Email, err)
	}

	s.logger.InfoContext(ctx, "oauth user created", "user_id", user.ID, "provider", profile.Provider)
	return user, true, nil
}

// GetUser retrieves a user by ID
func (s *accountService) GetUser(ctx context.Context, userID string) (*db.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, domain.WrapUserNotFound(userID, err)
		}
		return nil, domain.WrapDatabaseOperation("get user", err)
	}
	return user, nil
}
