package ocr

import "fmt"

// InitError reports a failure to load or initialize an engine for a
// language. It is fatal for the whole run: no files are processed.
type InitError struct {
	Engine   string
	Language Language
	Err      error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initialize %s engine for %q: %v", e.Engine, e.Language, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// RecognitionError reports a failure to recognize one input image. It is
// file-scoped: the batch continues and the engine instance remains usable.
type RecognitionError struct {
	InputID string
	Err     error
}

func (e *RecognitionError) Error() string {
	if e.InputID == "" {
		return fmt.Sprintf("recognize image: %v", e.Err)
	}
	return fmt.Sprintf("recognize %s: %v", e.InputID, e.Err)
}

func (e *RecognitionError) Unwrap() error { return e.Err }
