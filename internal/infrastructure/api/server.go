package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sofiakaramia/Data-Storm/internal/config"
	"github.com/sofiakaramia/Data-Storm/internal/pkg/logger"
	"github.com/sofiakaramia/Data-Storm/internal/services"
)

type StatusServer struct {
	server     *http.Server
	router     *gin.Engine
	handler    *StatusHandler
	middleware *Middleware
	config     *config.Config
	logger     logger.Logger
}

func NewStatusServer(collector services.Service, cfg *config.Config) *StatusServer {
	gin.SetMode(gin.ReleaseMode)
	if cfg.App.Env == "development" {
		gin.SetMode(gin.DebugMode)
	}

	return &StatusServer{
		router:     gin.New(),
		handler:    NewStatusHandler(collector),
		middleware: NewMiddleware(),
		config:     cfg,
		logger:     logger.New(cfg.App.LogLevel, cfg.App.Env).WithField("component", "status_server"),
	}
}

func (s *StatusServer) setupRoutes() {
	s.router.Use(s.middleware.Recovery())
	s.router.Use(s.middleware.Logging())

	s.router.GET("/health", s.handler.HealthCheck)
	s.router.GET("/summary/latest", s.handler.GetLatestSummary)

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": fmt.Sprintf("Route %s not found", c.Request.URL.Path),
		})
	})
}

func (s *StatusServer) Start() error {
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.API.Port),
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.logger.Infof("Starting status server on port %d", s.config.API.Port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Fatalf("Failed to start status server: %v", err)
		}
	}()

	return nil
}

func (s *StatusServer) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down status server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server gracefully: %w", err)
	}

	s.logger.Info("Status server stopped")
	return nil
}
