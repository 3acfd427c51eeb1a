package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"crawlkit/internal/corerr"
	"crawlkit/internal/crawler"
	"crawlkit/internal/metrics"

	"github.com/sirupsen/logrus"
)

// CrawlHandler exposes the crawler orchestrator over HTTP: starting a
// crawl from a seed set, stopping it, and reading its pending set.
// Adapted from internal/http/handlers/web_page_analysis_handler.go's
// request/response/validate shape, repurposed from single-shot page
// analysis to a long-lived orchestrator.
type CrawlHandler struct {
	fetcher       crawler.PageFetcher
	log           *logrus.Logger
	workers       int
	queueCapacity int
	stopDeadline  time.Duration

	mu      sync.Mutex
	current *crawler.Orchestrator
}

func NewCrawlHandler(fetcher crawler.PageFetcher, log *logrus.Logger, workers, queueCapacity int, stopDeadline time.Duration) *CrawlHandler {
	return &CrawlHandler{
		fetcher:       fetcher,
		log:           log,
		workers:       workers,
		queueCapacity: queueCapacity,
		stopDeadline:  stopDeadline,
	}
}

type startCrawlRequest struct {
	Seeds []string `json:"seeds"`
}

func (req *startCrawlRequest) validate() error {
	if len(req.Seeds) == 0 {
		return corerr.New("seeds is empty")
	}
	for _, s := range req.Seeds {
		u, err := url.Parse(s)
		if err != nil {
			return corerr.Wrap(err, "failed to parse seed url")
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return corerr.New("seed url is invalid: " + s)
		}
	}
	return nil
}

type pendingResponse struct {
	Pending []string `json:"pending"`
}

// HandleStart stops any crawl already running (folding its pending set,
// which is then discarded in favor of the fresh seed set) and starts a
// new one.
func (h *CrawlHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var req startCrawlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(h.log, w, "failed to decode request body", err, http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		sendError(h.log, w, "failed to validate request body", err, http.StatusBadRequest)
		return
	}

	seeds := make([]crawler.PageRef, len(req.Seeds))
	for i, s := range req.Seeds {
		seeds[i] = crawler.PageRef(s)
	}

	h.mu.Lock()
	if h.current != nil {
		h.current.Stop(h.stopDeadline)
	}
	o := crawler.New("crawl", h.workers, h.queueCapacity, h.fetcher, h.log, seeds)
	h.current = o
	h.mu.Unlock()

	o.Start()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(pendingResponse{Pending: req.Seeds})
}

// HandleStop stops the active crawl and returns its new pending set.
func (h *CrawlHandler) HandleStop(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	o := h.current
	h.mu.Unlock()

	if o == nil {
		sendError(h.log, w, "no crawl is running", corerr.IllegalState, http.StatusConflict)
		return
	}
	o.Stop(h.stopDeadline)
	h.writePending(w, o)
}

// HandlePending returns the active crawl's current pending set.
func (h *CrawlHandler) HandlePending(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	o := h.current
	h.mu.Unlock()

	if o == nil {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(pendingResponse{Pending: []string{}})
		return
	}
	h.writePending(w, o)
}

func (h *CrawlHandler) writePending(w http.ResponseWriter, o *crawler.Orchestrator) {
	refs := o.PendingSnapshot()
	pending := make([]string, len(refs))
	for i, r := range refs {
		pending[i] = string(r)
	}
	metrics.PendingSetSize.Set(float64(len(pending)))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pendingResponse{Pending: pending})
}
