package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/secrets/internal/system"
)

const healthTimeout = 2 * time.Second

// HealthResponse is the body of /api/health
type HealthResponse struct {
	Status   string        `json:"status"`
	Service  string        `json:"service"`
	Database string        `json:"database"`
	System   *system.Stats `json:"system,omitempty"`
}

// health reports whether the user store answers, plus a process snapshot
func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:   "healthy",
		Service:  "secrets",
		Database: "ok",
	}
	status := http.StatusOK

	if err := s.store.Ping(ctx); err != nil {
		slog.ErrorContext(ctx, "database ping failed", "error", err)
		resp.Status = "unhealthy"
		resp.Database = "unreachable"
		status = http.StatusServiceUnavailable
	}

	stats, err := system.Collect()
	if err != nil {
		slog.WarnContext(ctx, "host memory stats unavailable", "error", err)
	}
	resp.System = stats

	c.JSON(status, resp)
}
