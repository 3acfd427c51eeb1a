// Package config loads the demo service's configuration from a .env
// file plus the environment, in the teacher's godotenv style
// (internal/application/config, internal/http/config.go), merged into a
// single loader since the demo binary owns both the HTTP layer and the
// crawler core.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Timeouts groups the HTTP server's lifecycle durations, carried over
// from the teacher's HTTPServerConfig.
type Timeouts struct {
	Read         time.Duration
	ReadHeader   time.Duration
	Write        time.Duration
	Idle         time.Duration
	ShutdownWait time.Duration
}

// Config is the demo service's full configuration.
type Config struct {
	LogLevel  logrus.Level
	DebugMode bool

	HTTPHost    string
	MetricsHost string
	PprofHost   string
	Timeouts    Timeouts

	// CrawlWorkers and CrawlQueueCapacity size the tracking pool each
	// orchestrator run creates.
	CrawlWorkers       int
	CrawlQueueCapacity int

	// FetchTimeout bounds a single page fetch; LinkProbeConcurrency
	// bounds the demo fetcher's concurrent link-accessibility checks.
	FetchTimeout         time.Duration
	LinkProbeConcurrency int
}

// Load reads config.env (if present — a missing file is not an error, it
// simply means the process environment is used as-is, matching how
// godotenv.Load behaves when deployed with env vars already set) then
// the environment, applying defaults for anything unset.
func Load() (*Config, error) {
	_ = godotenv.Load("config.env")

	cfg := &Config{}

	level, err := logrus.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level
	cfg.DebugMode = os.Getenv("ENABLE_DEBUG") == "true"

	cfg.HTTPHost = getenv("HTTP_SERVER_HOST", ":8080")
	cfg.MetricsHost = getenv("METRICS_HOST", ":9090")
	cfg.PprofHost = getenv("PPROF_HOST", ":6060")

	var errs []string
	cfg.Timeouts.Read = parseDuration("HTTP_APP_READ_TIMEOUT_DURATION", "5s", &errs)
	cfg.Timeouts.ReadHeader = parseDuration("HTTP_APP_READ_HEADER_TIMEOUT_DURATION", "5s", &errs)
	cfg.Timeouts.Write = parseDuration("HTTP_APP_WRITE_TIMEOUT_DURATION", "10s", &errs)
	cfg.Timeouts.Idle = parseDuration("HTTP_APP_IDLE_TIMEOUT_DURATION", "60s", &errs)
	cfg.Timeouts.ShutdownWait = parseDuration("HTTP_APP_SHUTDOWN_TIMEOUT_DURATION", "10s", &errs)
	cfg.FetchTimeout = parseDuration("CRAWL_FETCH_TIMEOUT_DURATION", "5s", &errs)

	cfg.CrawlWorkers = parseInt("CRAWL_WORKERS", 8, &errs)
	cfg.CrawlQueueCapacity = parseInt("CRAWL_QUEUE_CAPACITY", 256, &errs)
	cfg.LinkProbeConcurrency = parseInt("CRAWL_LINK_PROBE_CONCURRENCY", 16, &errs)

	if len(errs) != 0 {
		return nil, fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string, errs *[]string) time.Duration {
	raw := getenv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s: invalid duration %q: %v", key, raw, err))
		return 0
	}
	return d
}

func parseInt(key string, fallback int, errs *[]string) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var n int
	if _, err := fmt.Sscanf(raw, "%d", &n); err != nil || n <= 0 {
		*errs = append(*errs, fmt.Sprintf("%s: invalid positive integer %q", key, raw))
		return fallback
	}
	return n
}
