package tracking

import (
	"testing"
	"time"

	"crawlkit/internal/cancel"
	"crawlkit/internal/corerr"
	"crawlkit/internal/pool"
	"github.com/stretchr/testify/require"
)

type strItem string

func (s strItem) Key() string { return string(s) }

type nopLogger struct{}

func (nopLogger) Errorf(string, ...interface{}) {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Infof(string, ...interface{})  {}

func TestCancelledAtShutdownIllegalStateBeforeTerminated(t *testing.T) {
	tp := New("tr1", 1, 16, pool.Hooks{}, nopLogger{})
	defer tp.ShutdownNow()

	_, err := tp.CancelledAtShutdown()
	require.ErrorIs(t, err, corerr.IllegalState)
}

func TestCancelledAtShutdownRecordsTasksCancelledWhileStopping(t *testing.T) {
	tp := New("tr2", 1, 16, pool.Hooks{}, nopLogger{})

	started := make(chan struct{})
	_, err := tp.Submit(strItem("blocker"), func(tok *cancel.Token) (any, error) {
		close(started)
		<-tok.Done()
		return nil, corerr.Cancelled
	})
	require.NoError(t, err)
	<-started

	_, err = tp.Submit(strItem("queued"), func(tok *cancel.Token) (any, error) { return nil, nil })
	require.NoError(t, err)

	unstarted := tp.ShutdownNow()
	require.True(t, tp.AwaitTermination(time.Second))

	cancelled, err := tp.CancelledAtShutdown()
	require.NoError(t, err)
	require.Len(t, cancelled, 1)
	require.Equal(t, "blocker", cancelled[0].Key())

	require.Len(t, unstarted, 1)
	require.Equal(t, "queued", unstarted[0].Key())
}

func TestCancelledAtShutdownEmptyOnGracefulCompletion(t *testing.T) {
	tp := New("tr3", 2, 16, pool.Hooks{}, nopLogger{})
	_, err := tp.Submit(strItem("ok"), func(tok *cancel.Token) (any, error) { return 1, nil })
	require.NoError(t, err)

	tp.ShutdownGraceful()

	cancelled, err := tp.CancelledAtShutdown()
	require.NoError(t, err)
	require.Empty(t, cancelled)
}
