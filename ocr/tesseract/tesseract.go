// Package tesseract implements ocr.Engine on top of the gosseract client.
// One client is created at Init with the run's language and reused for every
// image in the batch; Close releases it exactly once.
package tesseract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/otiai10/gosseract/v2"

	"github.com/wudi/ocrkit/ocr"
)

func init() {
	ocr.SetDefaultEngineFactory(func() ocr.Engine { return New() })
}

// Engine is a Tesseract-backed recognition engine.
type Engine struct {
	clientFactory func() *gosseract.Client

	mu       sync.Mutex
	client   *gosseract.Client
	progress ocr.ProgressFunc
	closed   bool
}

// New constructs an uninitialized Tesseract engine.
func New() *Engine {
	return &Engine{clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string { return "tesseract" }

// SetProgressFunc installs the progress sink invoked during Recognize.
func (e *Engine) SetProgressFunc(fn ocr.ProgressFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.progress = fn
}

// Init loads the trained data for lang into a fresh client. Calling Init on
// an already-initialized engine is an error; the instance is meant to serve
// exactly one run.
func (e *Engine) Init(ctx context.Context, lang ocr.Language) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return &ocr.InitError{Engine: "tesseract", Language: lang, Err: errors.New("engine closed")}
	}
	if e.client != nil {
		return &ocr.InitError{Engine: "tesseract", Language: lang, Err: errors.New("engine already initialized")}
	}
	if err := ctx.Err(); err != nil {
		return &ocr.InitError{Engine: "tesseract", Language: lang, Err: err}
	}
	if !lang.Valid() {
		return &ocr.InitError{Engine: "tesseract", Language: lang, Err: errors.New("unknown language code")}
	}
	notify(e.progress, ocr.ProgressEvent{Status: ocr.StatusInitializing, Fraction: 0})
	c := e.clientFactory()
	if err := c.SetLanguage(string(lang)); err != nil {
		c.Close()
		return &ocr.InitError{Engine: "tesseract", Language: lang, Err: err}
	}
	notify(e.progress, ocr.ProgressEvent{Status: ocr.StatusInitializing, Fraction: 1})
	e.client = c
	return nil
}

// Recognize runs OCR on one input using the run's shared client. A failure
// leaves the client usable for the next input.
func (e *Engine) Recognize(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	e.mu.Lock()
	c, fn := e.client, e.progress
	e.mu.Unlock()
	if c == nil {
		return ocr.Result{}, &ocr.RecognitionError{InputID: in.ID, Err: errors.New("engine not initialized")}
	}
	if err := ctx.Err(); err != nil {
		return ocr.Result{}, err
	}

	notify(fn, ocr.ProgressEvent{Status: ocr.StatusRecognizing, Fraction: 0})
	if err := c.SetImageFromBytes(in.Image); err != nil {
		return ocr.Result{}, &ocr.RecognitionError{InputID: in.ID, Err: fmt.Errorf("set image: %w", err)}
	}
	if in.DPI > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(in.DPI)); err != nil {
			return ocr.Result{}, &ocr.RecognitionError{InputID: in.ID, Err: fmt.Errorf("set dpi: %w", err)}
		}
	}
	for k, v := range in.Metadata {
		if err := c.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return ocr.Result{}, &ocr.RecognitionError{InputID: in.ID, Err: fmt.Errorf("set variable %s: %w", k, err)}
		}
	}
	text, err := c.Text()
	if err != nil {
		return ocr.Result{}, &ocr.RecognitionError{InputID: in.ID, Err: err}
	}
	notify(fn, ocr.ProgressEvent{Status: ocr.StatusRecognizing, Fraction: 1})

	return ocr.Result{
		InputID:   in.ID,
		PlainText: strings.TrimSpace(text),
	}, nil
}

// Close releases the underlying client. Safe to call after a failed Init;
// subsequent calls are no-ops.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	if e.client == nil {
		return nil
	}
	err := e.client.Close()
	e.client = nil
	return err
}

// notify is handed e.progress read under e.mu: Init holds the lock at its
// call sites, Recognize copies the sink up front.
func notify(fn ocr.ProgressFunc, ev ocr.ProgressEvent) {
	if fn != nil {
		fn(ev)
	}
}
