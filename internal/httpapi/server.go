// Package httpapi wires the demo service's chi router, middleware chain,
// and lifecycle servers (HTTP, metrics, pprof), adapted from the
// teacher's internal/http package.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Server is the main HTTP server carrying the demo API.
type Server struct {
	server *http.Server
	log    *logrus.Logger
}

// Timeouts mirrors the teacher's HTTPServerConfig.Timeouts group.
type Timeouts struct {
	Read         time.Duration
	ReadHeader   time.Duration
	Write        time.Duration
	Idle         time.Duration
	ShutdownWait time.Duration
}

// NewServer builds the HTTP server over router, not yet listening.
func NewServer(host string, timeouts Timeouts, router *chi.Mux, log *logrus.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:              host,
			Handler:           router,
			ReadTimeout:       timeouts.Read,
			ReadHeaderTimeout: timeouts.ReadHeader,
			WriteTimeout:      timeouts.Write,
			IdleTimeout:       timeouts.Idle,
		},
		log: log,
	}
}

func (s *Server) Start() error {
	s.log.Info("starting HTTP server on ", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop(timeout time.Duration) error {
	s.log.Info("shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	s.log.Info("HTTP server exiting")
	return nil
}
