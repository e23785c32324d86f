package web

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harrisonrobin/taskaudit/pkg/reconcile"
)

// Reconciler is the part of the reconcile package the web layer depends on.
type Reconciler interface {
	Run(ctx context.Context) (*reconcile.Result, error)
}

// Server exposes reconciliation over HTTP.
type Server struct {
	reconciler Reconciler
	router     *gin.Engine
}

// NewServer builds the router. When apiKey is non-empty, the reconciliation
// endpoint requires a matching X-API-Key header.
func NewServer(rec Reconciler, apiKey string) *Server {
	router := gin.Default()

	s := &Server{
		reconciler: rec,
		router:     router,
	}

	router.GET("/healthz", s.handleHealth)
	router.GET("/", apiKeyAuth(apiKey), s.handleReconcile)

	return s
}

// Run starts the HTTP server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler returns the underlying handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// apiKeyAuth checks the X-API-Key header. Validation is skipped entirely
// when no key is configured.
func apiKeyAuth(expected string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expected == "" {
			return
		}
		key := c.GetHeader("X-API-Key")
		if key == "" {
			c.Header("WWW-Authenticate", "ApiKey")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status": "error",
				"detail": "missing API key, provide the X-API-Key header",
			})
			return
		}
		if key != expected {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status": "error",
				"detail": "invalid API key",
			})
			return
		}
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleReconcile(c *gin.Context) {
	result, err := s.reconciler.Run(c.Request.Context())
	if err != nil {
		log.Printf("reconciliation run failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"status": "error",
			"detail": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, result)
}
