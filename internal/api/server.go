package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/renthing/internal/config"
)

// Server represents the API server
type Server struct {
	echo     *echo.Echo
	cfg      *config.Config
	handlers *AssistantHandlers
}

// NewServer creates a new API server
func NewServer(cfg *config.Config, handlers *AssistantHandlers) *Server {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Server.AllowedOrigins},
	}))
	if cfg.Server.RatePerMinute > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(
			rate.Limit(float64(cfg.Server.RatePerMinute) / 60.0),
		)))
	}

	server := &Server{
		echo:     e,
		cfg:      cfg,
		handlers: handlers,
	}

	// Setup routes
	server.setupRoutes()

	return server
}

// setupRoutes configures all API endpoints
func (s *Server) setupRoutes() {
	// Health check endpoint
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	// API v1 group
	v1 := s.echo.Group("/api/v1")

	// Assistant endpoints
	v1.POST("/assistant/message", s.handlers.handleMessage)
	v1.GET("/assistant/validate-path", s.handlers.handleValidatePath)
	v1.GET("/assistant/suggestion", s.handlers.handleSuggestion)
	v1.GET("/assistant/listing/:id", s.handlers.handleListingPreview)
	v1.GET("/assistant/aggregates", s.handlers.handleAggregates)
}

// Start begins the API server and blocks until interrupted
func (s *Server) Start() error {
	go func() {
		addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
		if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Shutting down the server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	timeout := time.Duration(s.cfg.Server.ShutdownTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	return s.echo.Shutdown(ctx)
}
