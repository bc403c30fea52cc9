// Package oauthtest serves a minimal OAuth2 provider for tests.
package oauthtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/secrets/internal/oauth"
	"golang.org/x/oauth2"
)

const (
	// ValidCode is the only authorization code the token endpoint accepts
	ValidCode   = "valid-code"
	accessToken = "test-access-token"
)

// Provider is an httptest-backed authorization server with token and profile endpoints
type Provider struct {
	Server *httptest.Server

	mu      sync.Mutex
	profile map[string]any
	status  int
}

// NewProvider starts a provider returning profile from its profile endpoint.
// The server is closed when the test ends.
func NewProvider(t testing.TB, profile map[string]any) *Provider {
	t.Helper()

	p := &Provider{profile: profile, status: http.StatusOK}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", p.handleToken)
	mux.HandleFunc("/profile", p.handleProfile)
	p.Server = httptest.NewServer(mux)
	t.Cleanup(p.Server.Close)

	return p
}

// SetProfile replaces the profile served to subsequent requests
func (p *Provider) SetProfile(profile map[string]any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profile = profile
}

// SetProfileStatus makes the profile endpoint answer with status
func (p *Provider) SetProfileStatus(status int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = status
}

// Params returns connector parameters pointing at this provider
func (p *Provider) Params(callbackURL string) oauth.Params {
	return oauth.Params{
		ClientID:     "test-client",
		ClientSecret: "test-secret",
		CallbackURL:  callbackURL,
		Endpoint: oauth2.Endpoint{
			AuthURL:   p.Server.URL + "/authorize",
			TokenURL:  p.Server.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		ProfileURL: p.Server.URL + "/profile",
		Scopes:     []string{"email"},
	}
}

func (p *Provider) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil || r.PostForm.Get("code") != ValidCode {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"access_token": accessToken,
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
}

func (p *Provider) handleProfile(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer "+accessToken {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	p.mu.Lock()
	profile, status := p.profile, p.status
	p.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(profile)
}
