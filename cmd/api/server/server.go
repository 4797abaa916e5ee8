package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	ginhandler "user-directory/internal/adapter/gin/handler"
	"user-directory/internal/adapter/gin/middleware"
	ginrouter "user-directory/internal/adapter/gin/router"
	"user-directory/internal/config"
)

// Server holds the HTTP server and its dependencies.
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	HTTP   *http.Server
}

// New creates a new server instance with the configured router.
func New(
	cfg *config.Config,
	l *zap.Logger,
	handler *ginhandler.UserHandler,
	rateLimiter *middleware.RateLimiter,
) *Server {
	router := ginrouter.SetupRouter(handler, rateLimiter, cfg.CORS, l)

	return &Server{
		Config: cfg,
		Logger: l,
		HTTP: &http.Server{
			Addr:              ":" + cfg.App.HTTPPort,
			Handler:           router,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start begins serving HTTP requests. It blocks until the server stops.
func (s *Server) Start() error {
	s.Logger.Info("HTTP server running", zap.String("address", s.HTTP.Addr))
	return s.HTTP.ListenAndServe()
}
