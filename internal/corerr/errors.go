// Package corerr defines the outcome taxonomy shared by the cancellation,
// pool, queue, and orchestrator packages, plus the call-site wrapping
// helpers used throughout the module.
package corerr

import (
	"errors"
	"fmt"
	"runtime"
)

// Sentinel outcomes. Callers compare with errors.Is; wrapping preserves the
// sentinel through Wrap below.
var (
	// Cancelled means a cooperative cancellation signal was observed.
	Cancelled = errors.New("cancelled")
	// Timeout means a deadline expired before an operation completed.
	Timeout = errors.New("timeout")
	// Rejected means a submission was refused because the pool is no
	// longer running.
	Rejected = errors.New("rejected")
	// IllegalState means the API was used in a state it does not support,
	// e.g. reading a tracking set before the pool has terminated. This is
	// a programming bug, not a recoverable outcome.
	IllegalState = errors.New("illegal state")
)

// New creates an error carrying the caller's location, in the teacher's
// style: every core error records where it was raised.
func New(msg string) error {
	return fmt.Errorf("%s: %s", msg, filePath())
}

// Wrap annotates err with msg and the caller's location, preserving err for
// errors.Is/errors.As.
func Wrap(err error, msg string) error {
	return fmt.Errorf("%s %s\ncaused by: %w", msg, filePath(), err)
}

// Is is a re-export of errors.Is for callers that only import corerr.
func Is(err error, target error) bool {
	return errors.Is(err, target)
}

// As is a re-export of errors.As for callers that only import corerr.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

func filePath() string {
	pc, f, l, ok := runtime.Caller(2)
	fn := "unknown"
	if ok {
		fn = runtime.FuncForPC(pc).Name()
	}
	return fmt.Sprintf("at %s\n\t%s:%d", fn, f, l)
}
