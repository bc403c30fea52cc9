package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/secrets/internal/constants"
	"github.com/secrets/internal/domain"
	"github.com/secrets/internal/metrics"
)

// register creates a local account and starts its session
func (s *Server) register(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.RegisterRequest
	if err := bindForm(c, &req); err != nil {
		slog.WarnContext(ctx, "invalid registration form", "error", err)
		metrics.RegistrationsTotal.WithLabelValues(metrics.ResultFailure).Inc()
		c.Redirect(http.StatusFound, constants.RouteRegister)
		return
	}

	user, err := s.accounts.Register(ctx, req)
	metrics.RegistrationsTotal.WithLabelValues(metrics.Result(err)).Inc()
	if err != nil {
		logFailure(ctx, "registration failed", err)
		c.Redirect(http.StatusFound, constants.RouteRegister)
		return
	}

	if err := s.sessions.Start(c.Writer, user); err != nil {
		slog.ErrorContext(ctx, "failed to start session", "user_id", user.ID, "error", err)
		c.Redirect(http.StatusFound, constants.RouteRegister)
		return
	}

	c.Redirect(http.StatusFound, constants.RouteSecrets)
}

// login checks local credentials and starts a session
func (s *Server) login(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.LoginRequest
	if err := bindForm(c, &req); err != nil {
		slog.WarnContext(ctx, "invalid login form", "error", err)
		metrics.LoginsTotal.WithLabelValues(metrics.MethodLocal, metrics.ResultFailure).Inc()
		c.Redirect(http.StatusFound, constants.RouteLogin)
		return
	}

	user, err := s.accounts.Authenticate(ctx, req)
	metrics.LoginsTotal.WithLabelValues(metrics.MethodLocal, metrics.Result(err)).Inc()
	if err != nil {
		logFailure(ctx, "login failed", err)
		c.Redirect(http.StatusFound, constants.RouteLogin)
		return
	}

	if err := s.sessions.Start(c.Writer, user); err != nil {
		slog.ErrorContext(ctx, "failed to start session", "user_id", user.ID, "error", err)
		c.Redirect(http.StatusFound, constants.RouteLogin)
		return
	}

	c.Redirect(http.StatusFound, constants.RouteSecrets)
}

// logout ends the current session, if any
func (s *Server) logout(c *gin.Context) {
	s.sessions.End(c.Writer, c.Request)
	c.Redirect(http.StatusFound, constants.RouteHome)
}

// logFailure logs a rejected request at error level when storage failed and
// at warn level when the visitor's input was refused
func logFailure(ctx context.Context, msg string, err error) {
	if domain.IsInfrastructureError(err) {
		slog.ErrorContext(ctx, msg, "error", err)
		return
	}
	slog.WarnContext(ctx, msg, "reason", domain.PublicMessage(err), "error", err)
}

// bindForm binds the request form into obj, reporting the offending fields
// as a validation error
func bindForm(c *gin.Context, obj any) error {
	err := c.ShouldBind(obj)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		return domain.WrapValidationError(strings.Join(fields, ", "), nil)
	}

	return domain.WrapValidationError("form", err)
}
