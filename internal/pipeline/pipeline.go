// Package pipeline drives the bounded producer–consumer pipeline from
// spec §4.F over an unbounded internal/queue: N producers each post M
// poison pills (one per consumer) once they finish or observe
// cancellation, and each consumer exits only after it has taken N pills
// (as many as there are producers, whichever producers posted them), so
// a later producer's still-queued real items are never left undrained
// behind an earlier producer's pills.
package pipeline

import (
	"crawlkit/internal/cancel"
	"crawlkit/internal/corerr"
	"crawlkit/internal/queue"

	"golang.org/x/sync/errgroup"
)

// entry is what actually travels through the queue: either a real value
// or a poison pill. The zero value of T is never observed by a consumer
// when pill is true.
type entry[T any] struct {
	pill  bool
	value T
}

// Producer is handed a put function that enqueues one real work item. An
// error it returns is reported by Run if it is the first error any
// producer or consumer returned (errgroup semantics); it does not stop
// the other producers or consumers. A producer that merely observes its
// own cancellation and stops producing should return nil — pills are
// always posted on its behalf regardless of how it returns.
type Producer[T any] func(tok *cancel.Token, put func(T) error) error

// Consumer processes one item taken off the queue. Returning an error
// ends that consumer's loop, and Run reports the error if it is the
// first one returned; the other consumers keep taking items. Returning
// nil lets the consumer loop take the next item (a pill is counted
// instead of processed, and the loop exits once it has counted as many
// pills as there are producers).
type Consumer[T any] func(tok *cancel.Token, item T) error

// Run starts len(producers) producers and len(consumers) consumers over
// a shared unbounded queue and blocks until every consumer has exited
// (by pill or by error) and every producer has returned. tok is handed
// to every producer and consumer call, and also wakes any consumer
// blocked in Take if it trips before enough pills have arrived.
//
// Run posts exactly len(producers) * len(consumers) pills in total, one
// batch of len(consumers) pills per producer, always via an uncancellable
// Put — the queue is unbounded, so a pill Put can never actually block,
// matching spec §4.F's requirement that pill posting always eventually
// succeeds.
func Run[T any](tok *cancel.Token, producers []Producer[T], consumers []Consumer[T]) error {
	q := queue.New[entry[T]](queue.Unbounded)
	numConsumers := len(consumers)

	var g errgroup.Group

	for _, p := range producers {
		p := p
		g.Go(func() error {
			put := func(item T) error {
				return q.Put(entry[T]{value: item}, tok)
			}
			err := p(tok, put)

			// A pill Put always succeeds immediately against an unbounded
			// queue, so there is nothing to retry: capacity is never the
			// reason a pill's Put would block.
			for i := 0; i < numConsumers; i++ {
				_ = q.Put(entry[T]{pill: true}, nil)
			}
			return err
		})
	}

	numProducers := len(producers)

	for _, c := range consumers {
		c := c
		g.Go(func() error {
			pillsSeen := 0
			for {
				e, err := q.Take(tok)
				if err != nil {
					if corerr.Is(err, corerr.Cancelled) {
						return nil
					}
					return err
				}
				if e.pill {
					pillsSeen++
					if pillsSeen >= numProducers {
						return nil
					}
					continue
				}
				if err := c(tok, e.value); err != nil {
					return err
				}
			}
		})
	}

	return g.Wait()
}
