package pipeline

import (
	"sync"
	"testing"

	"crawlkit/internal/cancel"
	"github.com/stretchr/testify/require"
)

// S3 — poison-pill termination: 2 producers, 3 consumers, unbounded
// queue. Each producer posts items {1,2,3} then 3 pills. Consumers must
// process the multiset {1,1,2,2,3,3} exactly once, then all exit.
func TestPoisonPillTermination(t *testing.T) {
	tok := cancel.New()

	producers := make([]Producer[int], 2)
	for i := range producers {
		producers[i] = func(tok *cancel.Token, put func(int) error) error {
			for _, v := range []int{1, 2, 3} {
				if err := put(v); err != nil {
					return err
				}
			}
			return nil
		}
	}

	var mu sync.Mutex
	var processed []int
	consumers := make([]Consumer[int], 3)
	for i := range consumers {
		consumers[i] = func(tok *cancel.Token, item int) error {
			mu.Lock()
			processed = append(processed, item)
			mu.Unlock()
			return nil
		}
	}

	err := Run(tok, producers, consumers)
	require.NoError(t, err)

	require.Len(t, processed, 6)
	counts := map[int]int{}
	for _, v := range processed {
		counts[v]++
	}
	require.Equal(t, map[int]int{1: 2, 2: 2, 3: 2}, counts)
}

// Total pills posted = N x M, regardless of how many items each producer
// emits before posting them.
func TestPillCountIsProducersTimesConsumers(t *testing.T) {
	tok := cancel.New()

	const n, m = 3, 4
	producers := make([]Producer[int], n)
	for i := range producers {
		producers[i] = func(tok *cancel.Token, put func(int) error) error {
			return nil
		}
	}

	consumers := make([]Consumer[int], m)
	for i := range consumers {
		consumers[i] = func(tok *cancel.Token, item int) error {
			t.Fatalf("no real items were produced, got %v", item)
			return nil
		}
	}

	// Every consumer must see exactly one pill per producer (n*m total) to
	// exit at all; Run returning here is itself the assertion that the
	// pill count and routing are correct — a shortfall would hang.
	err := Run(tok, producers, consumers)
	require.NoError(t, err)
}

// A producer that observes cancellation mid-workload still posts its full
// batch of pills before exiting, so consumers are never left waiting
// forever for a missing pill.
func TestProducerCancellationStillPostsAllPills(t *testing.T) {
	tok := cancel.New()
	tok.Trip()

	producerRan := make(chan struct{})
	producers := []Producer[int]{
		func(tok *cancel.Token, put func(int) error) error {
			defer close(producerRan)
			if err := tok.Check(); err != nil {
				return nil
			}
			return put(1)
		},
	}

	var mu sync.Mutex
	var processed []int
	consumers := []Consumer[int]{
		func(tok *cancel.Token, item int) error {
			mu.Lock()
			processed = append(processed, item)
			mu.Unlock()
			return nil
		},
	}

	err := Run(tok, producers, consumers)
	require.NoError(t, err)
	<-producerRan
	require.Empty(t, processed)
}

// A consumer's error is returned by Run (errgroup reports the first
// error once every producer and consumer has returned).
func TestConsumerErrorIsReturnedByRun(t *testing.T) {
	tok := cancel.New()
	boom := errAlways("boom")

	producers := []Producer[int]{
		func(tok *cancel.Token, put func(int) error) error {
			for i := 0; i < 100; i++ {
				if err := put(i); err != nil {
					return err
				}
			}
			return nil
		},
	}
	consumers := []Consumer[int]{
		func(tok *cancel.Token, item int) error { return boom },
	}

	err := Run(tok, producers, consumers)
	require.ErrorIs(t, err, boom)
}

type errAlways string

func (e errAlways) Error() string { return string(e) }
