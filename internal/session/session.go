package session

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-pkgz/auth/token"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/secrets/internal/config"
	"github.com/secrets/internal/constants"
	"github.com/secrets/internal/db"
)

// ErrNoSession is returned when a request carries no usable session
var ErrNoSession = errors.New("no active session")

// Manager issues and checks JWT session cookies through go-pkgz/auth
type Manager struct {
	tokens      *token.Service
	revocations *Revocations
	duration    time.Duration
}

// NewManager creates a session manager signing tokens with cfg.Secret
func NewManager(cfg config.SessionConfig, revocations *Revocations) *Manager {
	tokens := token.NewService(token.Opts{
		SecretReader: token.SecretFunc(func(string) (string, error) {
			return cfg.Secret, nil
		}),
		TokenDuration:  constants.SessionDuration,
		CookieDuration: constants.SessionDuration,
		Issuer:         constants.SessionIssuer,
		SecureCookies:  cfg.SecureCookie,
		SameSite:       http.SameSiteLaxMode,
		DisableXSRF:    true, // Plain HTML form posts carry no XSRF header
	})

	return &Manager{
		tokens:      tokens,
		revocations: revocations,
		duration:    constants.SessionDuration,
	}
}

// Start sets a session cookie for user
func (m *Manager) Start(w http.ResponseWriter, user *db.User) error {
	now := time.Now()

	sessionUser := &token.User{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
	sessionUser.SetStrAttr("provider", user.Provider)

	claims := token.Claims{
		User: sessionUser,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.New().String(),
			Issuer:    constants.SessionIssuer,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.duration).Unix(),
		},
	}

	_, err := m.tokens.Set(w, claims)
	return err
}

// Current returns the claims of the request's session if it is valid,
// unexpired and not revoked
func (m *Manager) Current(r *http.Request) (token.Claims, error) {
	claims, _, err := m.tokens.Get(r)
	if err != nil {
		return token.Claims{}, ErrNoSession
	}
	if claims.User == nil || claims.User.ID == "" {
		return token.Claims{}, ErrNoSession
	}
	if !claims.VerifyExpiresAt(time.Now().Unix(), true) {
		return token.Claims{}, ErrNoSession
	}
	if m.revocations.IsRevoked(claims.Id) {
		return token.Claims{}, ErrNoSession
	}
	return claims, nil
}

// End revokes the request's session (if any) and clears the cookies
func (m *Manager) End(w http.ResponseWriter, r *http.Request) {
	if claims, _, err := m.tokens.Get(r); err == nil {
		m.revocations.Revoke(claims.Id, time.Unix(claims.ExpiresAt, 0))
	}
	m.tokens.Reset(w)
}
