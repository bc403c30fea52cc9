package http

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/secrets/internal/constants"
	"github.com/secrets/web"
)

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Pages
	s.engine.GET(constants.RouteHome, s.homePage)
	s.engine.GET(constants.RouteSecrets, s.secretsPage)
	s.engine.GET(constants.RouteLogin, s.loginPage)
	s.engine.GET(constants.RouteRegister, s.registerPage)

	// Local accounts
	s.engine.POST(constants.RouteRegister, s.register)
	s.engine.POST(constants.RouteLogin, s.login)
	s.engine.GET(constants.RouteLogout, s.logout)

	// Secrets - protected by a session
	submit := s.engine.Group(constants.RouteSubmit)
	submit.Use(s.requireAuth())
	{
		submit.GET("", s.submitPage)
		submit.POST("", s.submitSecret)
	}

	s.setupOAuthRoutes()

	// Operational endpoints
	s.engine.GET("/api/health", s.health)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	css, err := fs.Sub(web.Static, "static/css")
	if err != nil {
		panic(err)
	}
	s.engine.StaticFS("/css", http.FS(css))
}

func (s *Server) setupOAuthRoutes() {
	for _, provider := range []string{constants.ProviderGoogle, constants.ProviderFacebook} {
		auth := s.engine.Group("/auth/" + provider)
		{
			auth.GET("", s.beginOAuth(provider))
			auth.GET("/secrets", s.oauthCallback(provider))
		}
	}
}
