// Package recovery decides how a batch run reacts when one file in the
// queue fails. The default strategy skips the file and records a failure
// placeholder; fail-fast and bounded-failure strategies are available for
// callers that want stricter runs. Engine initialization failures never
// reach a strategy: they abort the run unconditionally.
package recovery

// Location identifies the queue entry the error originated from.
type Location struct {
	FileName  string
	FileIndex int
}

type Action int

const (
	ActionFail Action = iota
	ActionSkip
	ActionWarn
)

// Strategy is consulted once per failed file.
type Strategy interface {
	OnFileError(location Location, err error) Action
}

// Resetter is implemented by strategies carrying per-run state. The batch
// orchestrator resets such a strategy at the start of every run so failure
// budgets and accumulated errors never leak across runs.
type Resetter interface {
	Reset()
}

// The Func adapter allows plain functions as strategies.
type Func func(location Location, err error) Action

func (f Func) OnFileError(location Location, err error) Action { return f(location, err) }
