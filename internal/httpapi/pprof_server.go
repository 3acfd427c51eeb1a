package httpapi

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof" // registers profiling handlers on http.DefaultServeMux
	"time"

	"github.com/sirupsen/logrus"
)

// PprofServer serves Go's pprof endpoints on their own listener, never
// exposed on the main API's mux. Adapted from
// internal/http/pprof_server.go — that file relied on
// http.DefaultServeMux already carrying the pprof routes via the
// stdlib's import-for-side-effects convention but never performed the
// import itself; this version does.
type PprofServer struct {
	server *http.Server
	log    *logrus.Logger
}

func NewPprofServer(host string, log *logrus.Logger) *PprofServer {
	return &PprofServer{
		server: &http.Server{Addr: host, Handler: nil},
		log:    log,
	}
}

func (s *PprofServer) Start() error {
	s.log.Info("pprof server starting on ", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *PprofServer) Stop(timeout time.Duration) error {
	s.log.Info("shutting down pprof server...")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown pprof server: %w", err)
	}
	s.log.Info("pprof server exiting")
	return nil
}
