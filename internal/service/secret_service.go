package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/secrets/internal/db"
	"github.com/secrets/internal/domain"
)

// secretService implements the SecretService interface
type secretService struct {
	store  db.Store
	logger *slog.Logger
}

// NewSecretService creates a new secret service
func NewSecretService(store db.Store, logger *slog.Logger) domain.SecretService {
	return &secretService{
		store:  store,
		logger: logger,
	}
}

// SubmitSecret overwrites the user's secret; last write wins
func (s *secretService) SubmitSecret(ctx context.Context, userID, secret string) error {
	if err := s.store.UpdateSecret(ctx, userID, secret); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return domain.WrapUserNotFound(userID, err)
		}
		return domain.WrapDatabaseOperation("update secret", err)
	}

	s.logger.InfoContext(ctx, "secret submitted", "user_id", userID, "length", len(secret))
	return nil
}

// ListSecrets returns all submitted secrets without attribution
func (s *secretService) ListSecrets(ctx context.Context) ([]string, error) {
	secrets, err := s.store.ListSecrets(ctx)
	if err != nil {
		return nil, domain.WrapDatabaseOperation("list secrets", err)
	}
	return secrets, nil
}
