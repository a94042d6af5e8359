// Package httpapi provides the HTTP API for switchd.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/fyrsmithlabs/switchd/internal/session"
	"github.com/fyrsmithlabs/switchd/internal/specialist"
)

// Router handles one user message and returns the ordered response
// fragments.
type Router interface {
	HandleUserMessage(ctx context.Context, text, sessionID string) []string
}

// Server provides HTTP endpoints for switchd.
type Server struct {
	echo     *echo.Echo
	router   Router
	registry *specialist.Registry
	sessions *session.Store
	logger   *zap.Logger
	config   *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
	// RateLimit is requests per second per client IP. Zero disables limiting.
	RateLimit float64
}

// NewServer creates a new HTTP server.
func NewServer(router Router, registry *specialist.Registry, sessions *session.Store, logger *zap.Logger, cfg *Config) (*Server, error) {
	if router == nil {
		return nil, fmt.Errorf("router cannot be nil")
	}
	if registry == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 8080,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if cfg.RateLimit > 0 {
		e.Use(middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
			Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(cfg.RateLimit),
				Burst:     int(cfg.RateLimit) + 1,
				ExpiresIn: 3 * time.Minute,
			}),
		}))
	}
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:     e,
		router:   router,
		registry: registry,
		sessions: sessions,
		logger:   logger,
		config:   cfg,
	}

	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/api/v1")
	v1.POST("/messages", s.handleMessage)
	v1.GET("/specialists", s.handleSpecialists)
	v1.GET("/sessions/:id/history", s.handleHistory)
}

// MessageRequest is the request body for POST /api/v1/messages.
type MessageRequest struct {
	Text      string `json:"text"`
	SessionID string `json:"session_id"`
}

// MessageResponse is the response body for POST /api/v1/messages.
type MessageResponse struct {
	SessionID string   `json:"session_id"`
	Responses []string `json:"responses"`
}

// SpecialistsResponse is the response body for GET /api/v1/specialists.
type SpecialistsResponse struct {
	Specialists []specialist.AgentCard `json:"specialists"`
}

// HistoryResponse is the response body for GET /api/v1/sessions/:id/history.
type HistoryResponse struct {
	SessionID string         `json:"session_id"`
	Turns     []session.Turn `json:"turns"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleMessage routes one user message. A missing session id starts a new
// session; the generated id is returned so the caller can continue it.
func (s *Server) handleMessage(c echo.Context) error {
	var req MessageRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid message request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text field is required")
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	responses := s.router.HandleUserMessage(c.Request().Context(), req.Text, req.SessionID)

	return c.JSON(http.StatusOK, MessageResponse{
		SessionID: req.SessionID,
		Responses: responses,
	})
}

// handleSpecialists lists the registered specialist descriptors.
func (s *Server) handleSpecialists(c echo.Context) error {
	cards := s.registry.Cards()
	if cards == nil {
		cards = []specialist.AgentCard{}
	}
	return c.JSON(http.StatusOK, SpecialistsResponse{Specialists: cards})
}

// handleHistory returns the recorded turns for a session. Unknown sessions
// return an empty list rather than an error.
func (s *Server) handleHistory(c echo.Context) error {
	id := c.Param("id")
	turns := s.sessions.History(id)
	if turns == nil {
		turns = []session.Turn{}
	}
	return c.JSON(http.StatusOK, HistoryResponse{SessionID: id, Turns: turns})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
