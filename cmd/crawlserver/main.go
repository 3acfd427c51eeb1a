// Command crawlserver runs the demo crawl service: an HTTP API over the
// crawler orchestrator, backed by a real HTTP+HTML page fetcher. Adapted
// from the teacher's top-level main.go + internal/http/init.go, which
// together start the HTTP, metrics, and pprof servers and wait for a
// termination signal.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"crawlkit/internal/config"
	"crawlkit/internal/httpapi"
	"crawlkit/internal/webfetch"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logrus.New()
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	fetcher, err := webfetch.New(cfg.FetchTimeout, cfg.LinkProbeConcurrency, log)
	if err != nil {
		log.Fatalf("failed to create page fetcher: %v", err)
	}
	defer fetcher.Close()

	router := httpapi.NewRouter(fetcher, log, cfg.CrawlWorkers, cfg.CrawlQueueCapacity, cfg.Timeouts.ShutdownWait)
	httpServer := httpapi.NewServer(cfg.HTTPHost, httpapi.Timeouts(cfg.Timeouts), router, log)
	metricsServer := httpapi.NewMetricsServer(cfg.MetricsHost, log)
	pprofServer := httpapi.NewPprofServer(cfg.PprofHost, log)

	go httpServer.Start()
	go metricsServer.Start()
	go pprofServer.Start()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("shutting down crawlserver...")

	if err := httpServer.Stop(cfg.Timeouts.ShutdownWait); err != nil {
		log.Error(err)
	}
	if err := metricsServer.Stop(cfg.Timeouts.ShutdownWait); err != nil {
		log.Error(err)
	}
	if err := pprofServer.Stop(cfg.Timeouts.ShutdownWait); err != nil {
		log.Error(err)
	}
}
