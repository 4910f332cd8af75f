package report

import (
	"errors"
	"strings"
	"testing"
)

func TestTextFormat(t *testing.T) {
	var r Report
	r.Append(Success("validImage.png", "recognized text"))

	if want := "File: validImage.png\n\nrecognized text\n\n"; r.Text() != want {
		t.Fatalf("Text() = %q, want %q", r.Text(), want)
	}
}

func TestTextPreservesOrderWithFailures(t *testing.T) {
	var r Report
	r.Append(Success("good.png", "hello"))
	r.Append(Failure("corrupt.pdf", errors.New("open document: bad xref")))

	out := r.Text()
	goodAt := strings.Index(out, "File: good.png")
	badAt := strings.Index(out, "File: corrupt.pdf")
	if goodAt < 0 || badAt < 0 || goodAt > badAt {
		t.Fatalf("blocks out of order:\n%s", out)
	}
	if !strings.Contains(out, "File: corrupt.pdf\n\n"+FailureMessage+"\n\n") {
		t.Fatalf("failure placeholder missing:\n%s", out)
	}
	if r.Failures() != 1 {
		t.Fatalf("Failures() = %d, want 1", r.Failures())
	}
}

func TestTextMultiPageBody(t *testing.T) {
	var r Report
	r.Append(Success("doc.pdf", "Page 1:\nfirst\n\nPage 2:\nsecond\n\n"))

	out := r.Text()
	if !strings.HasPrefix(out, "File: doc.pdf\n\nPage 1:\nfirst\n\nPage 2:\nsecond\n\n") {
		t.Fatalf("unexpected layout:\n%q", out)
	}
}

func TestMarkdown(t *testing.T) {
	var r Report
	r.Append(Success("a.png", "alpha"))
	r.Append(Failure("b.pdf", errors.New("x")))

	md := r.Markdown()
	for _, want := range []string{"# OCR Batch Report", "## a.png", "```\nalpha\n```", "## b.pdf", "> " + FailureMessage} {
		if !strings.Contains(md, want) {
			t.Errorf("Markdown() missing %q:\n%s", want, md)
		}
	}
}

func TestHTML(t *testing.T) {
	var r Report
	r.Append(Success("a.png", "alpha"))

	html, err := r.HTML()
	if err != nil {
		t.Fatalf("HTML() error = %v", err)
	}
	for _, want := range []string{"<h1", "<h2", "alpha"} {
		if !strings.Contains(string(html), want) {
			t.Errorf("HTML() missing %q:\n%s", want, html)
		}
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	var r Report
	if _, err := r.Render(Format("pdf")); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if out, err := r.Render(""); err != nil || string(out) != r.Text() {
		t.Fatalf("Render(\"\") = %q, %v", out, err)
	}
}
