package http

import (
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/secrets/internal/config"
	"github.com/secrets/internal/constants"
	"github.com/secrets/internal/db"
	"github.com/secrets/internal/domain"
	"github.com/secrets/internal/oauth"
	"github.com/secrets/internal/session"
	"github.com/secrets/web"
)

// Dependencies are the collaborators the HTTP server dispatches to
type Dependencies struct {
	Store    db.Store
	Accounts domain.AccountService
	Secrets  domain.SecretService
	Sessions *session.Manager
	// Connectors maps a provider name to its OAuth connector. Providers
	// without an entry redirect to the login page.
	Connectors map[string]*oauth.Connector
}

// Server wraps the HTTP server
type Server struct {
	config     *config.Config
	store      db.Store
	accounts   domain.AccountService
	secrets    domain.SecretService
	sessions   *session.Manager
	states     *oauth.StateSigner
	connectors map[string]*oauth.Connector
	engine     *gin.Engine
	httpServer *http.Server
}

const (
	maxBodySize  = 1 << 20 // 1MB, forms only
	readTimeout  = 15 * time.Second
	writeTimeout = 30 * time.Second
	idleTimeout  = 120 * time.Second
)

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, deps Dependencies) *Server {
	// Set Gin mode based on environment
	switch cfg.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	// Middleware - order matters
	engine.Use(securityHeadersMiddleware())
	engine.Use(cacheControlMiddleware())
	engine.Use(loggerMiddleware())
	engine.Use(metricsMiddleware())
	engine.Use(formBodyLimitMiddleware(maxBodySize))

	engine.MaxMultipartMemory = maxBodySize
	engine.SetHTMLTemplate(template.Must(template.ParseFS(web.Templates, "templates/*.html")))

	connectors := deps.Connectors
	if connectors == nil {
		connectors = map[string]*oauth.Connector{}
	}

	addr := cfg.ServerAddress
	if addr == "" {
		addr = ":3000"
	}

	server := &Server{
		config:     cfg,
		store:      deps.Store,
		accounts:   deps.Accounts,
		secrets:    deps.Secrets,
		sessions:   deps.Sessions,
		states:     oauth.NewStateSigner(cfg.Session.Secret, constants.OAuthStateDuration),
		connectors: connectors,
		engine:     engine,
	}

	server.httpServer = &http.Server{
		Addr:           addr,
		Handler:        engine,
		ReadTimeout:    readTimeout,
		WriteTimeout:   writeTimeout,
		IdleTimeout:    idleTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	// Setup routes
	server.setupRoutes()

	return server
}

// Handler returns the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP server and blocks until it is shut down
func (s *Server) Run() error {
	slog.Info("HTTP server listening", "address", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
