// Package tracking wraps a pool.Pool to record which submitted tasks
// exited while the pool was shutting down abruptly, so an orchestrator
// (internal/crawler) can recover exactly the work that was interrupted
// mid-flight (spec §4.D).
package tracking

import (
	"sync"
	"time"

	"crawlkit/internal/cancel"
	"crawlkit/internal/corerr"
	"crawlkit/internal/pool"
)

// Pool wraps a pool.Pool, adding CancelledAtShutdown on top of the usual
// lifecycle operations.
type Pool struct {
	underlying *pool.Pool

	mu                  sync.Mutex
	cancelledAtShutdown []pool.WorkItem
}

// New starts a tracking pool. hooks and logger are forwarded to the
// underlying pool.Pool unchanged; tracking is implemented as a shim
// around each submitted task's body, not as an additional hook, so it
// never displaces a caller-supplied Before/After/Terminated.
func New(name string, workers int, queueCapacity int, hooks pool.Hooks, logger pool.Logger) *Pool {
	return &Pool{underlying: pool.New(name, workers, queueCapacity, hooks, logger)}
}

// Submit wraps fn with a finalization shim: once fn returns (or fails),
// the shim checks whether the pool is StateStopping and the task's own
// token observed a trip. If both hold, item's identity is appended to the
// cancelled-at-shutdown set. The shim never alters fn's result.
func (p *Pool) Submit(item pool.WorkItem, fn func(tok *cancel.Token) (any, error)) (*pool.Handle, error) {
	wrapped := func(tok *cancel.Token) (any, error) {
		value, err := fn(tok)
		if p.underlying.IsStopping() && tok.IsTripped() {
			p.mu.Lock()
			p.cancelledAtShutdown = append(p.cancelledAtShutdown, item)
			p.mu.Unlock()
		}
		return value, err
	}
	return p.underlying.Submit(pool.Task{Item: item, Fn: wrapped})
}

// CancelledAtShutdown returns the work items observed to have exited
// while the pool was stopping. It fails with corerr.IllegalState unless
// the underlying pool has reached StateTerminated, so readers only ever
// see a stable, fully-populated snapshot (spec §4.D — the set is
// "frozen and readable only after the underlying pool reaches
// terminated").
func (p *Pool) CancelledAtShutdown() ([]pool.WorkItem, error) {
	if p.underlying.State() != pool.StateTerminated {
		return nil, corerr.IllegalState
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]pool.WorkItem, len(p.cancelledAtShutdown))
	copy(out, p.cancelledAtShutdown)
	return out, nil
}

// ShutdownGraceful delegates to the underlying pool.
func (p *Pool) ShutdownGraceful() { p.underlying.ShutdownGraceful() }

// ShutdownNow delegates to the underlying pool.
func (p *Pool) ShutdownNow() []pool.WorkItem { return p.underlying.ShutdownNow() }

// AwaitTermination delegates to the underlying pool.
func (p *Pool) AwaitTermination(deadline time.Duration) bool {
	return p.underlying.AwaitTermination(deadline)
}

// State delegates to the underlying pool.
func (p *Pool) State() pool.State { return p.underlying.State() }

// IsStopping delegates to the underlying pool.
func (p *Pool) IsStopping() bool { return p.underlying.IsStopping() }
