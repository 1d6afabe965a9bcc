package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mohithhhh/maersk-copilot/internal/analytics"
	"github.com/mohithhhh/maersk-copilot/internal/conversation"
)

type Server struct {
	router   *gin.Engine
	engine   *analytics.Engine
	sessions *conversation.Manager
	logger   *zap.Logger
}

// NewServer creates a new server instance
func NewServer(engine *analytics.Engine, sessions *conversation.Manager, logger *zap.Logger) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	server := &Server{
		router:   router,
		engine:   engine,
		sessions: sessions,
		logger:   logger.Named("server"),
	}

	server.setupRoutes()
	return server
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.GET("/health", s.healthCheck)
		api.POST("/query", s.handleQuery)
		api.GET("/trends", s.handleTrends)
		api.GET("/geo", s.handleGeo)
	}
}

type queryRequest struct {
	SessionID string `json:"sessionId"`
	Question  string `json:"question" binding:"required"`
}

type queryResponse struct {
	SessionID string `json:"sessionId"`
	Response  any    `json:"response"`
}

// handleQuery resolves one conversation turn. Omitting sessionId starts a
// new conversation; the id comes back in the response for follow-up turns.
func (s *Server) handleQuery(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing question"})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = s.sessions.NewSession()
	}

	resp, err := s.sessions.Ask(c.Request.Context(), sessionID, req.Question)
	if err != nil {
		if errors.Is(err, conversation.ErrSessionBusy) {
			c.JSON(http.StatusConflict, gin.H{"error": "a query is already in flight for this session"})
			return
		}
		s.logger.Error("query failed", zap.String("sessionID", sessionID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, queryResponse{SessionID: sessionID, Response: resp})
}

// handleTrends serves the dedicated revenue trend view.
func (s *Server) handleTrends(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.RevenueTrend())
}

// handleGeo serves the dedicated geographic overview view.
func (s *Server) handleGeo(c *gin.Context) {
	c.JSON(http.StatusOK, s.engine.CustomerDistribution())
}

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "maersk-copilot",
		"version": "0.1.0",
	})
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
