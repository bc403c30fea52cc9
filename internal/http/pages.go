package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) homePage(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", nil)
}

func (s *Server) loginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", nil)
}

func (s *Server) registerPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", nil)
}

func (s *Server) submitPage(c *gin.Context) {
	c.HTML(http.StatusOK, "submit.html", nil)
}

// secretsPage lists every submitted secret. A store failure renders an empty page.
func (s *Server) secretsPage(c *gin.Context) {
	secrets, err := s.secrets.ListSecrets(c.Request.Context())
	if err != nil {
		slog.ErrorContext(c.Request.Context(), "failed to list secrets", "error", err)
		secrets = []string{}
	}

	c.HTML(http.StatusOK, "secrets.html", gin.H{
		"Secrets": secrets,
	})
}
