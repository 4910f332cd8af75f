// Package report assembles per-file recognition outcomes into the combined
// user-facing text block. Entries appear in exactly the batch's insertion
// order, regardless of which files failed.
package report

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

// FailureMessage is the fixed placeholder body for a file that could not be
// processed.
const FailureMessage = "Error: Unable to process this file. It may be corrupted or in an unsupported format."

// FileResult records the final, immutable outcome for one queued file.
type FileResult struct {
	Name string
	Text string
	Err  error
}

// Success records a recognized file.
func Success(name, text string) FileResult {
	return FileResult{Name: name, Text: text}
}

// Failure records a file that could not be processed.
func Failure(name string, err error) FileResult {
	return FileResult{Name: name, Err: err}
}

// Failed reports whether the file ended in a failure placeholder.
func (r FileResult) Failed() bool { return r.Err != nil }

func (r FileResult) body() string {
	if r.Failed() {
		return FailureMessage
	}
	return r.Text
}

// Report is the ordered collection of file outcomes for one run.
type Report struct {
	Results []FileResult
}

// Append records the next file's outcome.
func (r *Report) Append(res FileResult) {
	r.Results = append(r.Results, res)
}

// Failures counts failure placeholders in the report.
func (r Report) Failures() int {
	n := 0
	for _, res := range r.Results {
		if res.Failed() {
			n++
		}
	}
	return n
}

// Text renders the reference plain-text format: repeated
// "File: {name}\n\n{body}\n\n" blocks in queue order.
func (r Report) Text() string {
	var b strings.Builder
	for _, res := range r.Results {
		fmt.Fprintf(&b, "File: %s\n\n%s\n\n", res.Name, res.body())
	}
	return b.String()
}

// Markdown renders the report with one heading per file.
func (r Report) Markdown() string {
	var b strings.Builder
	b.WriteString("# OCR Batch Report\n\n")
	for _, res := range r.Results {
		fmt.Fprintf(&b, "## %s\n\n", res.Name)
		if res.Failed() {
			fmt.Fprintf(&b, "> %s\n\n", FailureMessage)
			continue
		}
		fmt.Fprintf(&b, "```\n%s\n```\n\n", strings.TrimRight(res.Text, "\n"))
	}
	return b.String()
}

// HTML converts the Markdown rendering with goldmark.
func (r Report) HTML() ([]byte, error) {
	var buf strings.Builder
	if err := goldmark.Convert([]byte(r.Markdown()), &buf); err != nil {
		return nil, fmt.Errorf("render html report: %w", err)
	}
	return []byte(buf.String()), nil
}

// Format selects a report rendering.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// Render emits the report in the requested format.
func (r Report) Render(f Format) ([]byte, error) {
	switch f {
	case FormatText, "":
		return []byte(r.Text()), nil
	case FormatMarkdown:
		return []byte(r.Markdown()), nil
	case FormatHTML:
		return r.HTML()
	}
	return nil, fmt.Errorf("unknown report format %q", f)
}
