package httpapi

import (
	"time"

	"crawlkit/internal/crawler"
	"crawlkit/internal/httpapi/handlers"
	"crawlkit/internal/httpapi/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// NewRouter builds the demo API's chi.Mux: the cancellation/pool/
// pipeline core is entirely invisible at this layer — it only ever sees
// the crawler.Orchestrator/PageFetcher seam.
func NewRouter(fetcher crawler.PageFetcher, log *logrus.Logger, crawlWorkers, crawlQueueCapacity int, stopDeadline time.Duration) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Metrics)
	r.Use(middleware.RequestIDLogger(log))

	crawlHandler := handlers.NewCrawlHandler(fetcher, log, crawlWorkers, crawlQueueCapacity, stopDeadline)

	r.Get("/ready", handlers.NewReadyHandler().Handle)
	r.Post("/crawl", crawlHandler.HandleStart)
	r.Post("/crawl/stop", crawlHandler.HandleStop)
	r.Get("/crawl/pending", crawlHandler.HandlePending)

	return r
}
