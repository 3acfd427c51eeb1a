// Package crawler implements the orchestrator from spec §4.G: it owns a
// pending set of not-yet-dispatched work-item identities, a seen set for
// dedup, and a tracking pool, and it preserves every not-yet-completed
// identity across a stop/start cycle.
package crawler

import (
	"context"
	"sync"
	"time"

	"crawlkit/internal/cancel"
	"crawlkit/internal/pool"
	"crawlkit/internal/tracking"
)

// PageRef is the demo crawler's work-item type: a URL string whose text,
// as given, is its domain-level identity. No normalization is applied.
type PageRef string

// Key implements pool.WorkItem.
func (p PageRef) Key() string { return string(p) }

// PageFetcher is the process_page collaborator: given a page, it returns
// the successor pages discovered from it. The actual HTTP fetch and HTML
// parse are out of the core's scope (internal/webfetch supplies a
// concrete implementation).
type PageFetcher interface {
	FetchSuccessors(ctx context.Context, page PageRef) ([]PageRef, error)
}

// Orchestrator drives a crawl over a PageFetcher using a tracking pool for
// execution. The zero value is not usable; construct with New.
type Orchestrator struct {
	name    string
	workers int
	queueCp int
	fetcher PageFetcher
	logger  pool.Logger

	mu      sync.Mutex
	pending map[PageRef]struct{}
	seen    map[PageRef]struct{}

	pool *tracking.Pool
}

// New creates an orchestrator seeded with the given pages as its initial
// pending set. Nothing runs until Start is called.
func New(name string, workers, queueCapacity int, fetcher PageFetcher, logger pool.Logger, seeds []PageRef) *Orchestrator {
	pending := make(map[PageRef]struct{}, len(seeds))
	for _, s := range seeds {
		pending[s] = struct{}{}
	}
	return &Orchestrator{
		name:    name,
		workers: workers,
		queueCp: queueCapacity,
		fetcher: fetcher,
		logger:  logger,
		pending: pending,
		seen:    make(map[PageRef]struct{}),
	}
}

// Start creates the underlying pool, submits a crawl task for every
// identity currently in pending, then clears pending — ownership of each
// identity passes to the pool until it completes or is interrupted.
func (o *Orchestrator) Start() {
	o.mu.Lock()
	toDispatch := make([]PageRef, 0, len(o.pending))
	for p := range o.pending {
		toDispatch = append(toDispatch, p)
	}
	o.pending = make(map[PageRef]struct{})
	o.mu.Unlock()

	p := tracking.New(o.name, o.workers, o.queueCp, pool.Hooks{}, o.logger)

	o.mu.Lock()
	o.pool = p
	o.mu.Unlock()

	for _, ref := range toDispatch {
		o.markSeen(ref)
		o.dispatch(p, ref)
	}
}

// markSeen inserts ref into seen. The orchestrator lock guards both
// pending and seen, but is never held across a pool or queue call —
// only around the in-memory set mutation itself.
func (o *Orchestrator) markSeen(ref PageRef) {
	o.mu.Lock()
	o.seen[ref] = struct{}{}
	o.mu.Unlock()
}

// checkAndMarkSeen atomically tests whether ref has already been
// dispatched and, if not, marks it seen. Returns true if this call is the
// one that newly marked it (i.e. the caller should dispatch it).
func (o *Orchestrator) checkAndMarkSeen(ref PageRef) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.seen[ref]; ok {
		return false
	}
	o.seen[ref] = struct{}{}
	return true
}

// dispatch submits one crawl task for ref. The task calls the fetcher for
// ref's successors; for each successor not already seen, it submits
// another crawl task, checking its own token before doing so. If the
// pool has already started stopping and rejects the submission outright,
// ref is folded straight back into pending — Submit failing is a
// deterministic outcome, never a silent loss of ref's identity.
func (o *Orchestrator) dispatch(p *tracking.Pool, ref PageRef) {
	_, err := p.Submit(ref, func(tok *cancel.Token) (any, error) {
		ctx := tok.Context(context.Background())
		successors, err := o.fetcher.FetchSuccessors(ctx, ref)
		if err != nil {
			return nil, err
		}
		for _, succ := range successors {
			if tok.IsTripped() {
				break
			}
			if !o.checkAndMarkSeen(succ) {
				continue
			}
			o.dispatch(p, succ)
		}
		return nil, nil
	})
	if err != nil {
		o.mu.Lock()
		o.pending[ref] = struct{}{}
		o.mu.Unlock()
	}
}

// Stop shuts the pool down abruptly, waits up to deadline for
// termination, then folds the identities of every unstarted task and
// every task cancelled mid-flight back into pending. No identity is ever
// permanently lost across a stop/start cycle unless it completed
// successfully before Stop was called.
func (o *Orchestrator) Stop(deadline time.Duration) {
	o.mu.Lock()
	p := o.pool
	o.mu.Unlock()
	if p == nil {
		return
	}

	unstarted := p.ShutdownNow()
	p.AwaitTermination(deadline)
	cancelledAtShutdown, err := p.CancelledAtShutdown()
	if err != nil {
		cancelledAtShutdown = nil
	}

	o.mu.Lock()
	for _, item := range unstarted {
		if ref, ok := item.(PageRef); ok {
			o.pending[ref] = struct{}{}
		}
	}
	for _, item := range cancelledAtShutdown {
		if ref, ok := item.(PageRef); ok {
			o.pending[ref] = struct{}{}
		}
	}
	o.mu.Unlock()
}

// PendingSnapshot returns a copy of the identities currently awaiting
// dispatch.
func (o *Orchestrator) PendingSnapshot() []PageRef {
	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([]PageRef, 0, len(o.pending))
	for p := range o.pending {
		out = append(out, p)
	}
	return out
}
