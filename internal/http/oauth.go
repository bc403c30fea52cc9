package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/secrets/internal/constants"
	"github.com/secrets/internal/metrics"
)

var errStateMismatch = errors.New("state does not match cookie")

// beginOAuth redirects to the provider's consent page with a signed state
// that is also kept in a short-lived cookie
func (s *Server) beginOAuth(provider string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		connector, ok := s.connectors[provider]
		if !ok {
			slog.WarnContext(ctx, "oauth provider not configured", "provider", provider)
			c.Redirect(http.StatusFound, constants.RouteLogin)
			return
		}

		state, err := s.states.Issue(provider)
		if err != nil {
			slog.ErrorContext(ctx, "failed to issue oauth state", "provider", provider, "error", err)
			c.Redirect(http.StatusFound, constants.RouteLogin)
			return
		}

		s.setStateCookie(c, provider, state, int(constants.OAuthStateDuration.Seconds()))
		c.Redirect(http.StatusFound, connector.AuthCodeURL(state))
	}
}

// oauthCallback completes the handshake, finds or creates the user and
// starts its session. Every failure lands on the login page.
func (s *Server) oauthCallback(provider string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		fail := func(msg string, err error) {
			slog.WarnContext(ctx, msg, "provider", provider, "error", err)
			metrics.LoginsTotal.WithLabelValues(provider, metrics.ResultFailure).Inc()
			c.Redirect(http.StatusFound, constants.RouteLogin)
		}

		connector, ok := s.connectors[provider]
		if !ok {
			slog.WarnContext(ctx, "oauth provider not configured", "provider", provider)
			c.Redirect(http.StatusFound, constants.RouteLogin)
			return
		}

		if reason := c.Query("error"); reason != "" {
			fail("oauth consent denied", errors.New(reason))
			return
		}

		state := c.Query("state")
		cookie, err := c.Cookie(constants.OAuthStateCookieName)
		s.setStateCookie(c, provider, "", -1)
		if err != nil || state == "" || cookie != state {
			fail("oauth state rejected", errStateMismatch)
			return
		}
		if err := s.states.Verify(state, provider); err != nil {
			fail("oauth state rejected", err)
			return
		}

		profile, err := connector.Exchange(ctx, c.Query("code"))
		if err != nil {
			fail("oauth exchange failed", err)
			return
		}

		user, created, err := s.accounts.ResolveOAuthUser(ctx, profile)
		if err != nil {
			fail("failed to resolve oauth user", err)
			return
		}
		if created {
			metrics.OAuthUsersCreatedTotal.WithLabelValues(provider).Inc()
		}

		if err := s.sessions.Start(c.Writer, user); err != nil {
			fail("failed to start session", err)
			return
		}

		metrics.LoginsTotal.WithLabelValues(provider, metrics.ResultSuccess).Inc()
		c.Redirect(http.StatusFound, constants.RouteSecrets)
	}
}

// setStateCookie scopes the state cookie to the provider's /auth path
func (s *Server) setStateCookie(c *gin.Context, provider, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.OAuthStateCookieName, value, maxAge, "/auth/"+provider, "", s.config.Session.SecureCookie, true)
}
