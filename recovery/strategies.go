package recovery

import "fmt"

// StrictStrategy fails the whole run on the first file error.
type StrictStrategy struct{}

func NewStrictStrategy() *StrictStrategy {
	return &StrictStrategy{}
}

func (s *StrictStrategy) OnFileError(Location, error) Action {
	return ActionFail
}

// LenientStrategy skips every failed file and accumulates the reasons. This
// is the batch default: one corrupt file never aborts the queue.
type LenientStrategy struct {
	Errors []error
}

func NewLenientStrategy() *LenientStrategy {
	return &LenientStrategy{}
}

func (s *LenientStrategy) OnFileError(location Location, err error) Action {
	s.Errors = append(s.Errors, fmt.Errorf("%s (queue position %d): %w", location.FileName, location.FileIndex, err))
	return ActionSkip
}

// Reset drops the errors accumulated during the previous run.
func (s *LenientStrategy) Reset() {
	s.Errors = nil
}

// BoundedStrategy skips failures up to a limit, then fails the run. Useful
// for large queues where a systemic problem (a wrong language pack, say)
// would otherwise produce a report full of placeholders.
type BoundedStrategy struct {
	Limit    int
	failures int
}

func NewBoundedStrategy(limit int) *BoundedStrategy {
	return &BoundedStrategy{Limit: limit}
}

func (s *BoundedStrategy) OnFileError(Location, error) Action {
	s.failures++
	if s.failures > s.Limit {
		return ActionFail
	}
	return ActionSkip
}

// Reset restores the full failure budget for a new run.
func (s *BoundedStrategy) Reset() {
	s.failures = 0
}
