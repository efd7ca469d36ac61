// Package web exposes the current soil sensor reading over HTTP.
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Server encapsulates the HTTP server configuration and dependencies
type Server struct {
	config *Config
	store  SnapshotReader
	router *mux.Router
	server *http.Server
	logger logrus.FieldLogger
	ctx    context.Context // Contexto para shutdown
}

// NewServer creates a new HTTP server that serves the readings held by store
func NewServer(ctx context.Context, store SnapshotReader, config *Config, logger logrus.FieldLogger) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	s := &Server{
		config: config,
		store:  store,
		router: mux.NewRouter(),
		logger: logger.WithField("component", "web"),
		ctx:    ctx,
	}

	s.setupRoutes(s.router)

	s.server = &http.Server{
		Addr:         net.JoinHostPort(config.Host, strconv.Itoa(config.Port)),
		Handler:      s.Handler(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(r *mux.Router) {
	r.HandleFunc(SensorDataPath, s.handleSensorData).Methods(http.MethodGet)
	r.MethodNotAllowedHandler = http.HandlerFunc(s.handleMethodNotAllowed)
	r.NotFoundHandler = http.HandlerFunc(s.handleNotFound)
}

// Handler returns the full middleware chain
func (s *Server) Handler() http.Handler {
	return s.loggingMiddleware(corsMiddleware(s.router))
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start starts the HTTP server and handles graceful shutdown via context
func (s *Server) Start() error {
	s.logger.Infof("Starting HTTP server on %s", s.server.Addr)

	serverErr := make(chan error, 1)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("failed to start server: %w", err)
		} else {
			serverErr <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := s.server.Shutdown(shutdownCtx); err != nil {
			s.logger.WithError(err).Error("Error during server shutdown")
			return fmt.Errorf("failed to shutdown server: %w", err)
		}

		s.logger.Info("HTTP server stopped")
		return s.ctx.Err()

	case err := <-serverErr:
		return err
	}
}
