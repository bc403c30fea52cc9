package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/secrets/internal/config"
	"github.com/secrets/internal/constants"
	"github.com/secrets/internal/db"
	"github.com/secrets/internal/http"
	"github.com/secrets/internal/logger"
	"github.com/secrets/internal/oauth"
	"github.com/secrets/internal/service"
	"github.com/secrets/internal/session"
)

const (
	startupTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	// Load .env file if it exists (optional, won't error if missing)
	envErr := godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.InitLogger(cfg.Environment)
	if envErr != nil {
		appLogger.Debug("no .env file loaded", "error", envErr)
	}

	// Initialize user store
	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	store, err := db.Open(ctx, cfg.Database)
	cancel()
	if err != nil {
		appLogger.Error("failed to initialize database", "backend", db.BackendName(cfg.Database.URL), "error", err)
		os.Exit(1)
	}
	defer store.Close()
	appLogger.Info("database ready", "backend", db.BackendName(cfg.Database.URL))

	// Sessions and their revocation pruning
	revocations := session.NewRevocations(constants.SessionDuration)
	pruner, err := session.StartPruner(revocations, constants.RevocationPrunePlan, appLogger)
	if err != nil {
		appLogger.Error("failed to schedule revocation pruning", "error", err)
		os.Exit(1)
	}
	defer pruner.Stop()

	connectors := map[string]*oauth.Connector{}
	if cfg.Google.Enabled() {
		connectors[constants.ProviderGoogle] = oauth.NewGoogle(cfg.Google)
	} else {
		appLogger.Warn("google login disabled: CLIENT_ID or CLIENT_SECRETS not set")
	}
	if cfg.Facebook.Enabled() {
		connectors[constants.ProviderFacebook] = oauth.NewFacebook(cfg.Facebook)
	} else {
		appLogger.Warn("facebook login disabled: FACEBOOK_APP_ID or FACEBOOK_APP_SECRET not set")
	}

	for _, connector := range connectors {
		appLogger.Info("oauth login enabled", "provider", connector.Name())
	}

	// Create HTTP server
	server := http.NewServer(cfg, http.Dependencies{
		Store:      store,
		Accounts:   service.NewAccountService(store, appLogger),
		Secrets:    service.NewSecretService(store, appLogger),
		Sessions:   session.NewManager(cfg.Session, revocations),
		Connectors: connectors,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			appLogger.Error("server stopped", "error", err)
		}
		return
	case sig := <-quit:
		appLogger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("graceful shutdown failed", "error", err)
	}
}
