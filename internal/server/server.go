package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/gorilla/handlers"

	"gridsynth/internal/config"
)

// Server wraps the HTTP listener for the mock utility API.
type Server struct {
	httpServer *http.Server
	cfg        config.ServerConfig
	log        *slog.Logger
}

func NewServer(cfg config.ServerConfig, api *API, log *slog.Logger) *Server {
	handler := handlers.CombinedLoggingHandler(os.Stdout, api.Router())

	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		cfg: cfg,
		log: log,
	}
}

// Start blocks serving requests until the listener fails or Stop is
// called.
func (s *Server) Start() error {
	s.log.Info("http server listening", "addr", s.cfg.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop drains in-flight requests within the configured shutdown window.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	s.log.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}
