// Package cancel implements the one-shot cooperative cancellation signal
// that the rest of the module builds on: a Token starts armed, is tripped
// at most once, and every blocking operation downstream (queue put/take,
// task-handle await, pool termination wait) returns promptly once it has.
//
// Token never exposes a way to untrip itself. That is deliberate: spec
// §4.A requires that a thread which locally swallows an observed
// cancellation (e.g. to run a bounded cleanup step) restore the signal
// before returning to code it doesn't own. Because Token is monotonic and
// has no Clear method, that restore is automatic — nothing can make a
// tripped Token look armed again to a later reader, no matter what any
// intermediate helper does with the error it got back from Check.
package cancel

import (
	"context"
	"sync"

	"crawlkit/internal/corerr"
)

// Token is a one-shot, monotonic cancellation signal. The zero value is not
// usable; construct with New or NewChild.
type Token struct {
	mu      sync.Mutex
	tripped bool
	done    chan struct{}
	wakers  []func()

	detachParent func()
}

// New creates an armed, standalone token.
func New() *Token {
	return &Token{done: make(chan struct{})}
}

// NewChild creates a token that trips whenever t trips, but that can also
// be tripped independently without affecting t or any sibling. This models
// spec §5's "cancellation of a worker pool implies cancellation of each
// running task's token" — the pool holds the parent, each task gets a
// child.
func (t *Token) NewChild() *Token {
	child := New()
	detach := t.Register(child.Trip)
	child.detachParent = detach
	return child
}

// Trip transitions the token from armed to tripped. Idempotent: the second
// and subsequent calls are no-ops. Establishes happens-before with any
// later IsTripped/Check observing true, and wakes every suspender and
// registered waker.
func (t *Token) Trip() {
	t.mu.Lock()
	if t.tripped {
		t.mu.Unlock()
		return
	}
	t.tripped = true
	wakers := t.wakers
	t.wakers = nil
	close(t.done)
	t.mu.Unlock()

	// Run wakers outside the lock: a waker must never observe the token's
	// internal lock held, and must run at most once.
	for _, w := range wakers {
		w()
	}
}

// IsTripped is a wait-free observation of the token's current state.
func (t *Token) IsTripped() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Check returns corerr.Cancelled if the token has tripped, else nil.
func (t *Token) Check() error {
	if t.IsTripped() {
		return corerr.Cancelled
	}
	return nil
}

// Done returns a channel that closes when the token trips, for use in
// select statements alongside other suspension points.
func (t *Token) Done() <-chan struct{} {
	return t.done
}

// Register installs a one-shot waker invoked when the token trips. An
// already-tripped token invokes waker immediately (synchronously, from the
// calling goroutine). Register returns a detach function that removes the
// waker if it has not fired yet; calling it after the waker has already
// run is a harmless no-op.
func (t *Token) Register(waker func()) (detach func()) {
	t.mu.Lock()
	if t.tripped {
		t.mu.Unlock()
		waker()
		return func() {}
	}

	// Wrap so the slot can be neutralized by identity without scanning a
	// slice for pointer equality on a bare func value.
	var once sync.Once
	slot := func() { once.Do(waker) }
	t.wakers = append(t.wakers, slot)
	idx := len(t.wakers) - 1
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		if idx < len(t.wakers) && t.wakers[idx] != nil {
			t.wakers[idx] = func() {}
		}
		t.mu.Unlock()
		once.Do(func() {}) // neutralize waker if it races with Trip
	}
}

// Context returns a context.Context that is cancelled when the token
// trips, for interop with code (HTTP handlers, the demo fetcher) that
// expects the standard library's cancellation signal rather than a Token.
func (t *Token) Context(parent context.Context) context.Context {
	ctx, cancel := context.WithCancel(parent)
	t.Register(cancel)
	return ctx
}

// Detach removes this token's trip-propagation link to its parent, if it
// was created with NewChild. After Detach, tripping the parent no longer
// trips this token. Tasks call this once they've finished, so a
// long-lived pool token doesn't accumulate waker closures for every task
// it has ever run.
func (t *Token) Detach() {
	if t.detachParent != nil {
		t.detachParent()
	}
}
