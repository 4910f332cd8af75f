package ocr

import (
	"context"
	"fmt"
)

// Language selects the trained data loaded into an engine for one run.
type Language string

const (
	LangEnglish            Language = "eng"
	LangChineseSimplified  Language = "chi_sim"
	LangChineseTraditional Language = "chi_tra"
)

// Valid reports whether l is one of the supported language codes.
func (l Language) Valid() bool {
	switch l {
	case LangEnglish, LangChineseSimplified, LangChineseTraditional:
		return true
	}
	return false
}

// ParseLanguage converts a user-supplied code into a Language.
func ParseLanguage(s string) (Language, error) {
	l := Language(s)
	if !l.Valid() {
		return "", fmt.Errorf("unknown language code %q", s)
	}
	return l, nil
}

// ImageFormat identifies the content type of an OCR input image.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "image/png"
	ImageFormatJPEG ImageFormat = "image/jpeg"
	ImageFormatTIFF ImageFormat = "image/tiff"
)

// Input encapsulates a single image submitted for recognition.
type Input struct {
	// ID is an optional caller-provided identifier that is echoed back in
	// the corresponding Result.
	ID string
	// Image is the encoded image payload in the format specified by Format.
	Image []byte
	// Format declares the image content type (e.g., image/png).
	Format ImageFormat
	// PageIndex links the input back to the 1-based page of the source
	// document; zero for standalone images.
	PageIndex int
	// DPI carries the effective dots-per-inch for the image. Providers such
	// as Tesseract use this for scaling heuristics; zero means unknown.
	DPI int
	// Metadata allows callers to pass through engine-specific knobs (e.g.,
	// "tessedit_pageseg_mode") without hard-coding them into the API surface.
	Metadata map[string]string
}

// Result captures recognition output for a single input image.
type Result struct {
	// InputID mirrors the Input.ID that produced this result.
	InputID string
	// PlainText contains the linearized text extracted from the image.
	PlainText string
}

// Progress status values emitted while a recognition call is in flight.
const (
	StatusInitializing = "initializing api"
	StatusRecognizing  = "recognizing text"
)

// ProgressEvent reports fractional progress for the in-flight operation.
// Fraction is local to one recognition call and lies in [0, 1].
type ProgressEvent struct {
	Status   string
	Fraction float64
}

// ProgressFunc receives progress events out of band while an engine call
// runs. Implementations must be fast; they execute on the engine's calling
// goroutine.
type ProgressFunc func(ProgressEvent)

// Engine is the stateful recognition provider contract. Init loads the
// language exactly once per run; Recognize may then be invoked repeatedly
// against the same instance. A recognition failure on one input must leave
// the instance usable for the next. Close releases the instance and is safe
// to call whether or not Init succeeded, but at most once per instance.
type Engine interface {
	Name() string
	Init(ctx context.Context, lang Language) error
	Recognize(ctx context.Context, in Input) (Result, error)
	Close() error
}

// ProgressReporter is implemented by engines that can emit fractional
// progress during Recognize.
type ProgressReporter interface {
	SetProgressFunc(fn ProgressFunc)
}
