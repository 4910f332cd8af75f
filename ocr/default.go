package ocr

import (
	"context"
	"errors"
)

var newDefaultEngine func() Engine = func() Engine { return noopEngine{} }

// NewDefaultEngine constructs a fresh instance of the library's default
// engine (Tesseract when the ocr/tesseract package is linked in). Each call
// returns an independent, uninitialized instance.
func NewDefaultEngine() Engine {
	return newDefaultEngine()
}

// SetDefaultEngineFactory replaces the default engine constructor.
func SetDefaultEngineFactory(factory func() Engine) {
	newDefaultEngine = factory
}

type noopEngine struct{}

func (noopEngine) Name() string { return "noop" }

func (noopEngine) Init(_ context.Context, lang Language) error {
	if !lang.Valid() {
		return &InitError{Engine: "noop", Language: lang, Err: errUnknownLanguage}
	}
	return nil
}

func (noopEngine) Recognize(_ context.Context, in Input) (Result, error) {
	return Result{InputID: in.ID}, nil
}

func (noopEngine) Close() error { return nil }

var errUnknownLanguage = errors.New("unknown language code")
