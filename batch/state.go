package batch

import "github.com/wudi/ocrkit/ocr"

// State is the orchestrator's position in the run lifecycle.
type State int

const (
	StateIdle State = iota
	StateInitializing
	StateProcessing
	StateFinalizing
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateProcessing:
		return "processing"
	case StateFinalizing:
		return "finalizing"
	case StateAborted:
		return "aborted"
	}
	return "idle"
}

// RunState is a snapshot of one run. It is reset at the start of each run;
// LastErr carries the fatal error of an aborted run, nil otherwise.
type RunState struct {
	RunID     string
	Language  ocr.Language
	State     State
	FileIndex int
	FileCount int
	Percent   float64
	LastErr   error
}

// Processing reports whether a run is currently in flight.
func (s RunState) Processing() bool {
	return s.State != StateIdle
}
