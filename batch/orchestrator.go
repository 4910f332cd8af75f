// Package batch drives a queue of documents through classification,
// rasterization, and recognition, aggregating per-file outcomes into one
// ordered report. Files are processed strictly sequentially against a
// single language-initialized engine instance, which is released exactly
// once on every exit path. A failure inside one file becomes a placeholder
// entry; only engine initialization failures abort the run.
package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wudi/ocrkit/document"
	"github.com/wudi/ocrkit/observability"
	"github.com/wudi/ocrkit/ocr"
	"github.com/wudi/ocrkit/progress"
	"github.com/wudi/ocrkit/raster"
	"github.com/wudi/ocrkit/recovery"
	"github.com/wudi/ocrkit/report"
)

// TransformFunc post-processes recognized text. page is the 1-based page
// ordinal for multi-page documents, zero for standalone images.
type TransformFunc func(ctx context.Context, text string, page int) (string, error)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger installs the run logger. Defaults to a no-op logger.
func WithLogger(l observability.Logger) Option {
	return func(o *Orchestrator) { o.logger = l }
}

// WithTracker replaces the progress policy. Defaults to progress.Overwrite,
// the reference behavior.
func WithTracker(t progress.Tracker) Option {
	return func(o *Orchestrator) { o.tracker = t }
}

// WithStrategy replaces the per-file failure policy. Defaults to
// recovery.LenientStrategy: skip the file, keep the batch alive. Strategies
// implementing recovery.Resetter are reset at the start of every run.
func WithStrategy(s recovery.Strategy) Option {
	return func(o *Orchestrator) { o.strategy = s }
}

// WithTransform installs a post-processing hook applied to every page's
// recognized text.
func WithTransform(fn TransformFunc) Option {
	return func(o *Orchestrator) { o.transform = fn }
}

// WithProgressFunc subscribes to the combined batch percentage (0–100).
func WithProgressFunc(fn func(percent float64)) Option {
	return func(o *Orchestrator) { o.onProgress = fn }
}

// Orchestrator owns the file queue for the duration of one run. Engine
// instances serve exactly one run each, so the orchestrator holds a factory
// and constructs a fresh one per Run; the orchestrator itself is reusable.
type Orchestrator struct {
	newEngine  func() ocr.Engine
	renderer   raster.Renderer
	tracker    progress.Tracker
	strategy   recovery.Strategy
	logger     observability.Logger
	transform  TransformFunc
	onProgress func(float64)

	mu  sync.RWMutex
	run RunState
}

// New builds an orchestrator. A nil factory selects the library default
// engine (Tesseract when linked in); a nil renderer selects MuPDF.
func New(newEngine func() ocr.Engine, renderer raster.Renderer, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		newEngine: newEngine,
		renderer:  renderer,
		tracker:   &progress.Overwrite{},
		strategy:  recovery.NewLenientStrategy(),
		logger:    observability.NopLogger{},
	}
	if o.newEngine == nil {
		o.newEngine = ocr.NewDefaultEngine
	}
	if o.renderer == nil {
		o.renderer = raster.NewMuPDF()
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Snapshot returns the current run state.
func (o *Orchestrator) Snapshot() RunState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.run
}

// Run processes the queue in insertion order and returns the assembled
// report. The two outcomes are mutually exclusive: a report (possibly
// holding failure placeholders) with a nil error, or an empty report with
// the run's single fatal error. A fresh engine instance is constructed and
// initialized for lang, reused across every file, and released exactly once
// whichever path the run takes, so the same orchestrator can process the
// queue again (after a language change, say).
func (o *Orchestrator) Run(ctx context.Context, lang ocr.Language, files []document.QueuedFile) (report.Report, error) {
	engine := o.newEngine()
	runID := uuid.NewString()
	log := o.logger.With(
		observability.String("run", runID),
		observability.String("language", string(lang)),
	)
	start := time.Now()

	o.mu.Lock()
	o.run = RunState{RunID: runID, Language: lang, State: StateInitializing, FileCount: len(files)}
	o.mu.Unlock()
	o.tracker.Reset()
	if r, ok := o.strategy.(recovery.Resetter); ok {
		r.Reset()
	}

	if pr, ok := engine.(ocr.ProgressReporter); ok {
		pr.SetProgressFunc(o.observe)
	}

	released := false
	release := func() {
		if released {
			return
		}
		released = true
		if err := engine.Close(); err != nil {
			log.Warn("engine release failed", observability.Error("err", err))
		}
	}
	defer release()

	var runErr error
	defer func() {
		o.finalize(log, runErr, start)
	}()

	log.Info("run started",
		observability.String("engine", engine.Name()),
		observability.Int(observability.MetricFileCount, len(files)),
	)

	if err := engine.Init(ctx, lang); err != nil {
		o.setState(StateAborted)
		log.Error("engine initialization failed", observability.Error("err", err))
		release()
		runErr = err
		return report.Report{}, err
	}

	o.setState(StateProcessing)
	var rep report.Report
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			runErr = err
			return rep, err
		}
		o.setFileIndex(i)
		flog := log.With(observability.String("file", f.Name), observability.Int("index", i))

		text, err := o.processFile(ctx, flog, engine, f)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				runErr = err
				return rep, err
			}
			flog.Warn("file failed", observability.Error("err", err))
			if o.strategy.OnFileError(recovery.Location{FileName: f.Name, FileIndex: i}, err) == recovery.ActionFail {
				runErr = fmt.Errorf("process %s: %w", f.Name, err)
				return rep, runErr
			}
			rep.Append(report.Failure(f.Name, err))
			continue
		}
		flog.Info("file done", observability.Int(observability.MetricRecognizedLength, len(text)))
		rep.Append(report.Success(f.Name, text))
	}

	log.Info("run complete",
		observability.Int(observability.MetricFileFailures, rep.Failures()),
	)
	return rep, nil
}

// processFile classifies one file and dispatches it to the single-image or
// multi-page path. Every error returned here is file-scoped.
func (o *Orchestrator) processFile(ctx context.Context, log observability.Logger, engine ocr.Engine, f document.QueuedFile) (string, error) {
	kind, err := document.Classify(f)
	if err != nil {
		return "", err
	}
	log.Debug("classified", observability.String("kind", kind.String()))

	if kind == document.KindMultiPage {
		doc, err := o.renderer.Open(f.Data)
		if err != nil {
			return "", err
		}
		defer doc.Close()
		return o.processPages(ctx, log, engine, doc)
	}

	in, err := ocr.InputFromFile(f)
	if err != nil {
		return "", err
	}
	res, err := engine.Recognize(ctx, in)
	if err != nil {
		return "", err
	}
	text := res.PlainText
	if o.transform != nil {
		if text, err = o.transform(ctx, text, 0); err != nil {
			return "", err
		}
	}
	return text, nil
}

// observe folds an engine progress event into the batch-wide percentage.
func (o *Orchestrator) observe(ev ocr.ProgressEvent) {
	o.mu.RLock()
	pos := progress.Position{FileIndex: o.run.FileIndex, FileCount: o.run.FileCount}
	o.mu.RUnlock()
	o.tracker.Observe(pos, ev)
	o.publish(o.tracker.Percent())
}

func (o *Orchestrator) publish(percent float64) {
	o.mu.Lock()
	o.run.Percent = percent
	o.mu.Unlock()
	if o.onProgress != nil {
		o.onProgress(percent)
	}
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.run.State = s
	o.mu.Unlock()
}

func (o *Orchestrator) setFileIndex(i int) {
	o.mu.Lock()
	o.run.FileIndex = i
	o.mu.Unlock()
}

// finalize resets the progress indicator and returns the orchestrator to
// Idle, keeping the run's fatal error (if any) visible in the snapshot.
func (o *Orchestrator) finalize(log observability.Logger, runErr error, start time.Time) {
	o.setState(StateFinalizing)
	o.tracker.Reset()
	o.publish(0)
	o.mu.Lock()
	o.run.State = StateIdle
	o.run.LastErr = runErr
	o.mu.Unlock()
	log.Debug("run finalized", observability.Int64(observability.MetricRunDuration, time.Since(start).Milliseconds()))
}
