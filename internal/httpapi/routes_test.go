package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crawlkit/internal/crawler"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type nopFetcher struct{}

func (nopFetcher) FetchSuccessors(context.Context, crawler.PageRef) ([]crawler.PageRef, error) {
	return nil, nil
}

func TestReadyRoute(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	r := NewRouter(nopFetcher{}, log, 1, 16, time.Second)

	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())
}

func TestCrawlPendingRouteBeforeAnyCrawl(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	r := NewRouter(nopFetcher{}, log, 1, 16, time.Second)

	req := httptest.NewRequest(http.MethodGet, "/crawl/pending", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
