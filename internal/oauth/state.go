package oauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

const stateAudience = "oauth-state"

// ErrInvalidState is returned when a callback's state does not verify
var ErrInvalidState = errors.New("invalid oauth state")

// StateSigner issues and verifies the state parameter of the OAuth handshake.
// A state is a short-lived HS256 token naming the provider it was issued for.
type StateSigner struct {
	secret []byte
	ttl    time.Duration
}

// NewStateSigner creates a signer using secret for states valid for ttl
func NewStateSigner(secret string, ttl time.Duration) *StateSigner {
	return &StateSigner{secret: []byte(secret), ttl: ttl}
}

// Issue returns a new signed state for provider
func (s *StateSigner) Issue(provider string) (string, error) {
	now := time.Now()
	claims := jwt.StandardClaims{
		Id:        uuid.New().String(),
		Subject:   provider,
		Audience:  stateAudience,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}

	state, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign state: %w", err)
	}
	return state, nil
}

// Verify checks that state was issued by this signer for provider and has not expired
func (s *StateSigner) Verify(state, provider string) error {
	claims := &jwt.StandardClaims{}
	_, err := jwt.ParseWithClaims(state, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if !claims.VerifyAudience(stateAudience, true) {
		return fmt.Errorf("%w: wrong audience", ErrInvalidState)
	}
	if claims.Subject != provider {
		return fmt.Errorf("%w: issued for %q", ErrInvalidState, claims.Subject)
	}
	return nil
}
