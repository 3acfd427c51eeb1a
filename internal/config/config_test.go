package config

import (
	"os"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func clearCrawlEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"LOG_LEVEL", "ENABLE_DEBUG", "HTTP_SERVER_HOST", "METRICS_HOST", "PPROF_HOST",
		"HTTP_APP_READ_TIMEOUT_DURATION", "HTTP_APP_READ_HEADER_TIMEOUT_DURATION",
		"HTTP_APP_WRITE_TIMEOUT_DURATION", "HTTP_APP_IDLE_TIMEOUT_DURATION",
		"HTTP_APP_SHUTDOWN_TIMEOUT_DURATION", "CRAWL_FETCH_TIMEOUT_DURATION",
		"CRAWL_WORKERS", "CRAWL_QUEUE_CAPACITY", "CRAWL_LINK_PROBE_CONCURRENCY",
	}
	for _, k := range keys {
		os.Unsetenv(k)
	}
	t.Cleanup(func() {
		for _, k := range keys {
			os.Unsetenv(k)
		}
	})
}

func TestLoadAppliesDefaults(t *testing.T) {
	clearCrawlEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	require.False(t, cfg.DebugMode)
	require.Equal(t, ":8080", cfg.HTTPHost)
	require.Equal(t, 8, cfg.CrawlWorkers)
	require.Equal(t, 5*time.Second, cfg.FetchTimeout)
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	clearCrawlEnv(t)
	os.Setenv("LOG_LEVEL", "not-a-level")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	clearCrawlEnv(t)
	os.Setenv("HTTP_APP_READ_TIMEOUT_DURATION", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadHonorsOverrides(t *testing.T) {
	clearCrawlEnv(t)
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("CRAWL_WORKERS", "32")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	require.Equal(t, 32, cfg.CrawlWorkers)
}
