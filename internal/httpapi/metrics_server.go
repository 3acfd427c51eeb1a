package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// MetricsServer serves /metrics on its own listener, separate from the
// main API, matching the teacher's internal/http/metrics_server.go.
type MetricsServer struct {
	server *http.Server
	log    *logrus.Logger
}

func NewMetricsServer(host string, log *logrus.Logger) *MetricsServer {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &MetricsServer{
		server: &http.Server{Addr: host, Handler: mux},
		log:    log,
	}
}

func (m *MetricsServer) Start() error {
	m.log.Info("metrics server starting on ", m.server.Addr)
	if err := m.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (m *MetricsServer) Stop(timeout time.Duration) error {
	m.log.Info("shutting down metrics server...")
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := m.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown metrics server: %w", err)
	}
	m.log.Info("metrics server exiting")
	return nil
}
