// Package queue implements the bounded (and, with capacity Unbounded, the
// unbounded) FIFO queue that the worker pool and poison-pill pipeline are
// built on: Put blocks while full, Take blocks while empty, and both are
// cancellation-aware via an *cancel.Token.
package queue

import (
	"errors"
	"sync"

	"crawlkit/internal/cancel"
	"crawlkit/internal/corerr"
)

// Unbounded, passed as capacity to New, means Put never blocks on
// capacity. Required by the poison-pill pipeline (spec §4.F): with a
// bounded queue, a producer retrying a poison-pill Put against consumers
// that have already exited can deadlock.
const Unbounded = 0

// ErrWouldBlock is returned by TryPut/TryTake when the operation cannot
// complete immediately.
var ErrWouldBlock = errors.New("queue: would block")

// Queue is a FIFO of T, fixed at capacity unless capacity is Unbounded.
type Queue[T any] struct {
	mu       sync.Mutex
	items    []T
	capacity int
	changed  chan struct{}
}

// New creates a queue. capacity must be > 0, or Unbounded.
func New[T any](capacity int) *Queue[T] {
	if capacity < 0 {
		panic("queue: negative capacity")
	}
	return &Queue[T]{capacity: capacity, changed: make(chan struct{})}
}

// notifyLocked wakes every goroutine currently waiting on q.changed. Must
// be called with q.mu held.
func (q *Queue[T]) notifyLocked() {
	close(q.changed)
	q.changed = make(chan struct{})
}

// Put enqueues item, blocking while the queue is at capacity. tok may be
// nil to block uncancellably.
//
// If Put observes the token tripped only after the item has already been
// appended (the enqueue and the trip race), it still returns
// corerr.Cancelled, but the item stays enqueued — the side effect is
// committed even though the outcome reported is cancellation (spec
// §4.B). Put never discards an item it has accepted.
func (q *Queue[T]) Put(item T, tok *cancel.Token) error {
	for {
		q.mu.Lock()
		if q.capacity <= 0 || len(q.items) < q.capacity {
			q.items = append(q.items, item)
			q.notifyLocked()
			q.mu.Unlock()
			if tok != nil {
				if err := tok.Check(); err != nil {
					return err
				}
			}
			return nil
		}
		wake := q.changed
		q.mu.Unlock()

		if tok == nil {
			<-wake
			continue
		}
		select {
		case <-wake:
		case <-tok.Done():
			return corerr.Cancelled
		}
	}
}

// Take dequeues the oldest item, blocking while the queue is empty. tok
// may be nil to block uncancellably. Unlike Put, a cancelled Take never
// consumes an item: cancellation and a successful dequeue are mutually
// exclusive outcomes.
func (q *Queue[T]) Take(tok *cancel.Token) (T, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			item := q.items[0]
			q.items = q.items[1:]
			q.notifyLocked()
			q.mu.Unlock()
			return item, nil
		}
		wake := q.changed
		q.mu.Unlock()

		if tok == nil {
			<-wake
			continue
		}
		select {
		case <-wake:
		case <-tok.Done():
			var zero T
			return zero, corerr.Cancelled
		}
	}
}

// TryPut enqueues item if there is room, else returns ErrWouldBlock without
// blocking.
func (q *Queue[T]) TryPut(item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.capacity > 0 && len(q.items) >= q.capacity {
		return ErrWouldBlock
	}
	q.items = append(q.items, item)
	q.notifyLocked()
	return nil
}

// TryTake dequeues the oldest item if one is present, else returns
// ErrWouldBlock without blocking.
func (q *Queue[T]) TryTake() (T, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		var zero T
		return zero, ErrWouldBlock
	}
	item := q.items[0]
	q.items = q.items[1:]
	q.notifyLocked()
	return item, nil
}

// TakeOrWait dequeues the oldest item if one is present. If the queue is
// empty, it instead returns the current change-notification channel
// under the same lock as the emptiness check, so a caller that polls
// (rather than blocking in Take) can select on wake without a window
// between "queue looked empty" and "started waiting" in which a Put
// could close a channel the caller never observed.
func (q *Queue[T]) TakeOrWait() (item T, ok bool, wake <-chan struct{}) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) > 0 {
		item = q.items[0]
		q.items = q.items[1:]
		q.notifyLocked()
		return item, true, nil
	}
	return item, false, q.changed
}

// WaitChan returns the queue's current change-notification channel: it
// closes the next time any item is enqueued, dequeued, or drained. Callers
// that poll with TryPut/TryTake can select on it (alongside a
// *cancel.Token's Done channel) instead of busy-waiting.
func (q *Queue[T]) WaitChan() <-chan struct{} {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.changed
}

// Len returns the current number of queued items.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Capacity returns the queue's fixed capacity, or Unbounded.
func (q *Queue[T]) Capacity() int {
	return q.capacity
}

// Drain removes and returns every item currently queued, leaving the
// queue empty. Used by the worker pool's shutdown_now to collect the
// "unstarted" list (spec §4.C).
func (q *Queue[T]) Drain() []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	drained := q.items
	q.items = nil
	q.notifyLocked()
	return drained
}
