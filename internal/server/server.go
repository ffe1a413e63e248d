// Package server exposes the HTTP surface: token issuance and validation,
// record queries, and audit log retrieval.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cdrscope/cdrscope/internal/domain/services"
)

// Server wires the domain services to the HTTP routes.
type Server struct {
	engine   *gin.Engine
	tokens   *services.TokenService
	queries  *services.QueryService
	recorder *services.Recorder
	log      *slog.Logger
}

// New builds the router. Every route except the liveness probe runs inside
// the audit middleware, so 401 and 404 outcomes are logged like successes.
func New(tokens *services.TokenService, queries *services.QueryService, recorder *services.Recorder, logger *slog.Logger) *Server {
	s := &Server{
		tokens:   tokens,
		queries:  queries,
		recorder: recorder,
		log:      logger,
	}

	r := gin.New()

	// The liveness probe is registered before the middleware chain so it is
	// never audited.
	r.GET("/healthz", s.handleHealth)

	// Audit sits outside Recovery: a panicking handler still completes as a
	// 500 response, and that outcome is recorded like any other.
	r.Use(s.requestID(), s.audit(), gin.Recovery())

	r.POST("/token", s.handleToken)
	r.GET("/validate-token", s.requireToken(), s.handleValidateToken)
	r.GET("/records", s.requireToken(), s.handleRecords)
	r.GET("/audit-logs", s.requireToken(), s.handleAuditLogs)

	s.engine = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
