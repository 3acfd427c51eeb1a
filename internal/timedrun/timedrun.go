// Package timedrun implements the "submit one task, wait up to a
// deadline" helper from spec §4.E: a single task is submitted to a pool,
// awaited with a deadline, and cancelled on every exit path — timeout,
// task failure, success, or an outer cancellation signal.
package timedrun

import (
	"time"

	"crawlkit/internal/cancel"
	"crawlkit/internal/pool"
)

// Submitter is the subset of *pool.Pool that Run needs, so it can also be
// driven by a fake in tests.
type Submitter interface {
	Submit(task pool.Task) (*pool.Handle, error)
}

// Run submits task to p, then waits up to deadline for its result.
//
//   - On timeout, the task's handle is cancelled with interrupt=true and
//     Run returns corerr.Timeout.
//   - On task failure, Run propagates the task's error.
//   - On success, Run returns the task's value.
//   - If outer is non-nil and trips before the task finishes, Run
//     cancels the task and its Await returns whatever outcome that
//     produces.
//
// The task's handle is cancelled on every exit path, including success —
// a scoped-acquisition pattern: tripping an already-finished task's token
// is a harmless no-op, so this never needs to special-case "did it already
// finish".
func Run(p Submitter, task pool.Task, deadline time.Duration, outer *cancel.Token) (any, error) {
	handle, err := p.Submit(task)
	if err != nil {
		return nil, err
	}
	defer handle.Cancel(true)

	if outer != nil {
		detach := outer.Register(func() { handle.Cancel(true) })
		defer detach()
	}

	return handle.Await(deadline)
}
