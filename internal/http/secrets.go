package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/secrets/internal/constants"
	"github.com/secrets/internal/domain"
	"github.com/secrets/internal/metrics"
)

// submitSecret overwrites the signed-in user's secret
func (s *Server) submitSecret(c *gin.Context) {
	ctx := c.Request.Context()

	user, ok := getUserFromContext(c)
	if !ok {
		c.Redirect(http.StatusFound, constants.RouteLogin)
		return
	}

	var req domain.SubmitSecretRequest
	if err := bindForm(c, &req); err != nil {
		slog.WarnContext(ctx, "invalid secret form", "user_id", user.ID, "error", err)
		c.Redirect(http.StatusFound, constants.RouteSubmit)
		return
	}

	if err := s.secrets.SubmitSecret(ctx, user.ID, req.Secret); err != nil {
		slog.ErrorContext(ctx, "failed to submit secret", "user_id", user.ID, "error", err)
		c.Redirect(http.StatusFound, constants.RouteSubmit)
		return
	}

	metrics.SecretsSubmittedTotal.Inc()
	c.Redirect(http.StatusFound, constants.RouteSecrets)
}
