package queue

import (
	"sync"
	"testing"
	"time"

	"crawlkit/internal/cancel"
	"crawlkit/internal/corerr"
	"github.com/stretchr/testify/require"
)

func TestFIFOSingleProducerSingleConsumer(t *testing.T) {
	q := New[int](4)
	for i := 0; i < 3; i++ {
		require.NoError(t, q.Put(i, nil))
	}
	for i := 0; i < 3; i++ {
		v, err := q.Take(nil)
		require.NoError(t, err)
		require.Equal(t, i, v)
	}
}

func TestTryPutWouldBlockAtCapacity(t *testing.T) {
	q := New[int](1)
	require.NoError(t, q.TryPut(1))
	require.ErrorIs(t, q.TryPut(2), ErrWouldBlock)
	require.Equal(t, 1, q.Len())
}

func TestTryTakeWouldBlockWhenEmpty(t *testing.T) {
	q := New[int](1)
	_, err := q.TryTake()
	require.ErrorIs(t, err, ErrWouldBlock)
}

func TestTakeOrWaitReturnsItemWhenPresent(t *testing.T) {
	q := New[int](4)
	require.NoError(t, q.Put(7, nil))

	v, ok, wake := q.TakeOrWait()
	require.True(t, ok)
	require.Equal(t, 7, v)
	require.Nil(t, wake)
	require.Zero(t, q.Len())
}

// The channel TakeOrWait returns when empty is captured under the same
// lock as the emptiness check, so a Put that lands right after must
// still close that exact channel — nothing selecting on it can miss the
// wakeup.
func TestTakeOrWaitWakeChannelObservesLaterPut(t *testing.T) {
	q := New[int](4)

	_, ok, wake := q.TakeOrWait()
	require.False(t, ok)
	require.NotNil(t, wake)

	done := make(chan struct{})
	go func() {
		<-wake
		close(done)
	}()

	require.NoError(t, q.Put(1, nil))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("wake channel from TakeOrWait did not close after Put")
	}
}

func TestPutCancelledWhileBlockedLeavesQueueUnchanged(t *testing.T) {
	q := New[int](1)
	require.NoError(t, q.Put(1, nil)) // fill it

	tok := cancel.New()
	done := make(chan error, 1)
	go func() { done <- q.Put(2, tok) }()

	time.Sleep(20 * time.Millisecond) // let the Put start blocking
	tok.Trip()

	select {
	case err := <-done:
		require.ErrorIs(t, err, corerr.Cancelled)
	case <-time.After(time.Second):
		t.Fatal("Put did not return after cancellation")
	}
	require.Equal(t, 1, q.Len())
	v, err := q.TryTake()
	require.NoError(t, err)
	require.Equal(t, 1, v)
}

func TestTakeCancelledWhileBlockedNeverConsumes(t *testing.T) {
	q := New[int](1)
	tok := cancel.New()
	done := make(chan error, 1)
	go func() {
		_, err := q.Take(tok)
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	tok.Trip()

	select {
	case err := <-done:
		require.ErrorIs(t, err, corerr.Cancelled)
	case <-time.After(time.Second):
		t.Fatal("Take did not return after cancellation")
	}
	require.Equal(t, 0, q.Len())
}

func TestPutCommitsEvenWhenTokenAlreadyTripped(t *testing.T) {
	// Fast path: room is available, so Put enqueues first and only then
	// notices the token is tripped. The item must remain queued even
	// though the reported outcome is Cancelled (spec §4.B edge case).
	q := New[int](4)
	tok := cancel.New()
	tok.Trip()

	err := q.Put(7, tok)
	require.ErrorIs(t, err, corerr.Cancelled)
	require.Equal(t, 1, q.Len())

	v, takeErr := q.TryTake()
	require.NoError(t, takeErr)
	require.Equal(t, 7, v)
}

func TestUnboundedQueueNeverBlocksOnPut(t *testing.T) {
	q := New[int](Unbounded)
	var wg sync.WaitGroup
	for i := 0; i < 1000; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			require.NoError(t, q.Put(v, nil))
		}(i)
	}
	wg.Wait()
	require.Equal(t, 1000, q.Len())
}

func TestDrainEmptiesQueue(t *testing.T) {
	q := New[int](4)
	require.NoError(t, q.Put(1, nil))
	require.NoError(t, q.Put(2, nil))

	drained := q.Drain()
	require.Equal(t, []int{1, 2}, drained)
	require.Equal(t, 0, q.Len())
}
