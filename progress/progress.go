// Package progress maps the per-invocation fractional progress emitted by a
// recognition engine into one batch-wide displayed percentage.
package progress

import "github.com/wudi/ocrkit/ocr"

// Position locates the current file in the queue while an event arrives.
// FileIndex is zero-based.
type Position struct {
	FileIndex int
	FileCount int
}

// Tracker folds recognition progress events into a 0–100 percentage.
// Implementations are not safe for concurrent use; the batch runs on a
// single goroutine.
type Tracker interface {
	Observe(pos Position, ev ocr.ProgressEvent)
	Percent() float64
	Reset()
}

// Overwrite is the reference policy: the displayed percentage is the most
// recent recognizing-text fraction scaled to 0–100, independent of queue
// position. The indicator therefore restarts at each recognition call and
// is not monotonic across a multi-file batch.
type Overwrite struct {
	percent float64
}

func (o *Overwrite) Observe(_ Position, ev ocr.ProgressEvent) {
	if ev.Status != ocr.StatusRecognizing {
		return
	}
	o.percent = clamp01(ev.Fraction) * 100
}

func (o *Overwrite) Percent() float64 { return o.percent }
func (o *Overwrite) Reset()           { o.percent = 0 }

// Weighted spreads the percentage across the queue: each file owns an equal
// share and the current recognition fraction fills that share. The result
// never decreases within a run. This deliberately deviates from the
// reference overwrite behavior; callers opt in.
type Weighted struct {
	percent float64
}

func (w *Weighted) Observe(pos Position, ev ocr.ProgressEvent) {
	if ev.Status != ocr.StatusRecognizing || pos.FileCount <= 0 {
		return
	}
	p := (float64(pos.FileIndex) + clamp01(ev.Fraction)) / float64(pos.FileCount) * 100
	if p > w.percent {
		w.percent = p
	}
}

func (w *Weighted) Percent() float64 { return w.percent }
func (w *Weighted) Reset()           { w.percent = 0 }

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
