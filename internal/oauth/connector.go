package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/secrets/internal/config"
	"github.com/secrets/internal/constants"
	"github.com/secrets/internal/domain"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/facebook"
	"golang.org/x/oauth2/google"
)

const (
	googleProfileURL   = "https://openidconnect.googleapis.com/v1/userinfo"
	facebookProfileURL = "https://graph.facebook.com/me?fields=id,name,email"

	maxProfileSize = 1 << 20
)

// Params configures a Connector
type Params struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string
	Endpoint     oauth2.Endpoint
	ProfileURL   string
	Scopes       []string
}

// Connector drives the authorization-code flow against one provider and
// turns the provider's profile into a domain.OAuthProfile
type Connector struct {
	name       string
	conf       *oauth2.Config
	profileURL string
}

// New creates a connector for the named provider
func New(name string, p Params) *Connector {
	return &Connector{
		name: name,
		conf: &oauth2.Config{
			ClientID:     p.ClientID,
			ClientSecret: p.ClientSecret,
			RedirectURL:  p.CallbackURL,
			Endpoint:     p.Endpoint,
			Scopes:       p.Scopes,
		},
		profileURL: p.ProfileURL,
	}
}

// NewGoogle creates the Google connector, requesting profile and email
func NewGoogle(cfg config.OAuthConfig) *Connector {
	return New(constants.ProviderGoogle, Params{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		CallbackURL:  cfg.CallbackURL,
		Endpoint:     google.Endpoint,
		ProfileURL:   googleProfileURL,
		Scopes:       []string{"profile", "email"},
	})
}

// NewFacebook creates the Facebook connector, requesting email
func NewFacebook(cfg config.OAuthConfig) *Connector {
	return New(constants.ProviderFacebook, Params{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		CallbackURL:  cfg.CallbackURL,
		Endpoint:     facebook.Endpoint,
		ProfileURL:   facebookProfileURL,
		Scopes:       []string{"email"},
	})
}

// Name returns the provider name
func (c *Connector) Name() string {
	return c.name
}

// AuthCodeURL returns the provider URL the visitor is redirected to
func (c *Connector) AuthCodeURL(state string) string {
	return c.conf.AuthCodeURL(state)
}

// profileResponse covers both the OpenID userinfo and the Graph API /me shapes
type profileResponse struct {
	Sub   string `json:"sub"`
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Exchange trades an authorization code for a token and fetches the profile
func (c *Connector) Exchange(ctx context.Context, code string) (domain.OAuthProfile, error) {
	if code == "" {
		return domain.OAuthProfile{}, domain.WrapOAuthFailed(c.name, fmt.Errorf("missing authorization code"))
	}

	tok, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return domain.OAuthProfile{}, domain.WrapOAuthFailed(c.name, fmt.Errorf("exchange code: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.profileURL, nil)
	if err != nil {
		return domain.OAuthProfile{}, domain.WrapOAuthFailed(c.name, err)
	}

	resp, err := c.conf.Client(ctx, tok).Do(req)
	if err != nil {
		return domain.OAuthProfile{}, domain.WrapOAuthFailed(c.name, fmt.Errorf("fetch profile: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.OAuthProfile{}, domain.WrapOAuthFailed(c.name, fmt.Errorf("fetch profile: unexpected status %d", resp.StatusCode))
	}

	var data profileResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProfileSize)).Decode(&data); err != nil {
		return domain.OAuthProfile{}, domain.WrapOAuthFailed(c.name, fmt.Errorf("decode profile: %w", err))
	}

	id := data.Sub
	if id == "" {
		id = data.ID
	}
	if id == "" {
		return domain.OAuthProfile{}, domain.WrapOAuthFailed(c.name, fmt.Errorf("profile has no id"))
	}

	return domain.OAuthProfile{
		Provider:    c.name,
		ID:          id,
		DisplayName: data.Name,
		Email:       data.Email,
	}, nil
}
