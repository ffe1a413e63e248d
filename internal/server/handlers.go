package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cdrscope/cdrscope/internal/domain/entities"
)

func (s *Server) handleToken(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	token, err := s.tokens.Issue(c.Request.Context(), username, password)
	if err != nil {
		if errors.Is(err, entities.ErrBadCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect username or password"})
			return
		}
		s.log.Error("token issuance failed", "request_id", c.GetString(requestIDKey), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

func (s *Server) handleValidateToken(c *gin.Context) {
	// requireToken already verified the bearer token.
	c.JSON(http.StatusOK, gin.H{"valid": true})
}

func (s *Server) handleRecords(c *gin.Context) {
	start, err := strconv.ParseInt(c.Query("start_date"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "start_date must be an integer epoch timestamp"})
		return
	}
	end, err := strconv.ParseInt(c.Query("end_date"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "end_date must be an integer epoch timestamp"})
		return
	}

	criteria := entities.Criteria{
		Start:     start,
		End:       end,
		Phone:     c.Query("phone"),
		Voicemail: c.Query("voicemail"),
		UserID:    c.Query("user_id"),
		ClusterID: c.Query("cluster"),
	}

	records, err := s.queries.Find(c.Request.Context(), criteria)
	if err != nil {
		var backendErr *entities.BackendError
		switch {
		case errors.Is(err, entities.ErrNoRecords):
			c.JSON(http.StatusNotFound, gin.H{"detail": "No records found for the given parameters"})
		case errors.Is(err, entities.ErrInvalidCriteria):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "start_date must not be after end_date"})
		case errors.As(err, &backendErr):
			s.log.Error("backend query failed", "request_id", c.GetString(requestIDKey), "error", err)
			c.JSON(http.StatusBadGateway, gin.H{"detail": "Backend unavailable"})
		default:
			s.log.Error("record query failed", "request_id", c.GetString(requestIDKey), "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, records)
}

func (s *Server) handleAuditLogs(c *gin.Context) {
	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "skip must be an integer"})
		return
	}

	entries, err := s.recorder.List(c.Request.Context(), skip)
	if err != nil {
		s.log.Error("audit log query failed", "request_id", c.GetString(requestIDKey), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
		return
	}
	if entries == nil {
		entries = []entities.AuditLogEntry{}
	}

	c.JSON(http.StatusOK, entries)
}
