package pool

import "crawlkit/internal/cancel"

// WorkItem is the contract a task's payload must satisfy so the tracking
// wrapper and crawler orchestrator can refer to it by domain identity
// without ever needing to inspect or execute it themselves.
type WorkItem interface {
	// Key returns the work item's domain-level identity (e.g. the
	// original URL or file path).
	Key() string
}

// Task is a closure carrying a work item, submitted to a Pool. Fn receives
// the per-task cancellation token; well-behaved tasks check it (via
// tok.Check() or a select on tok.Done()) at their own suspension points.
type Task struct {
	Item WorkItem
	Fn   func(tok *cancel.Token) (any, error)
}

// OutcomeKind tags how a task finished.
type OutcomeKind int

const (
	// OutcomeOK means Fn returned without error.
	OutcomeOK OutcomeKind = iota
	// OutcomeCancelled means Fn returned an error that wraps
	// corerr.Cancelled.
	OutcomeCancelled
	// OutcomeError means Fn failed with any other error.
	OutcomeError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeError:
		return "error"
	default:
		return "unknown"
	}
}

// Outcome is the tagged-variant result passed to an After hook (spec §9:
// "Tagged-variant outcome (Ok | Cancelled | Error) is passed to
// after_execute").
type Outcome struct {
	Kind  OutcomeKind
	Value any
	Err   error
}

// Hooks is the capability set a Pool accepts at construction in place of
// the source pattern's subclass overrides (spec §9 "Inheritance of the
// pool for hooks"). All three are optional.
type Hooks struct {
	// Before runs in the worker's goroutine before Fn. If it returns an
	// error, the task is skipped (Fn never runs) and After is not called
	// either; the task's handle resolves with that error.
	Before func(item WorkItem) error
	// After runs in the worker's goroutine once Fn has produced an
	// outcome. It is not called for a task whose Before failed.
	After func(item WorkItem, outcome Outcome)
	// Terminated runs once, when the pool reaches State Terminated.
	Terminated func()
}

// Logger is the injected failure sink a Pool logs unhandled task errors
// through. *logrus.Logger satisfies this directly.
type Logger interface {
	Errorf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Infof(format string, args ...interface{})
}

// State is one of the four lifecycle states a Pool moves through,
// monotonically, left to right: Running -> Draining|Stopping -> Terminated.
type State int32

const (
	// StateRunning accepts submissions.
	StateRunning State = iota
	// StateDraining rejects new submissions; queued tasks finish.
	StateDraining
	// StateStopping rejects new submissions, trips the pool token, and
	// drains queued tasks into an unstarted list.
	StateStopping
	// StateTerminated means every worker has exited.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateStopping:
		return "stopping"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

type poolEntry struct {
	task   Task
	handle *Handle
}
