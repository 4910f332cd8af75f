package scripting

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTransformApply(t *testing.T) {
	tr, err := NewTransform(`function transform(text, page) { return "[p" + page + "] " + text.trim(); }`)
	if err != nil {
		t.Fatalf("NewTransform() error = %v", err)
	}
	got, err := tr.Apply(context.Background(), "  hello world \n", 2)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	if want := "[p2] hello world"; got != want {
		t.Fatalf("Apply() = %q, want %q", got, want)
	}
}

func TestTransformReusable(t *testing.T) {
	tr, err := NewTransform(`function transform(text) { return text.toUpperCase(); }`)
	if err != nil {
		t.Fatalf("NewTransform() error = %v", err)
	}
	for _, in := range []string{"a", "b", "c"} {
		out, err := tr.Apply(context.Background(), in, 1)
		if err != nil {
			t.Fatalf("Apply(%q) error = %v", in, err)
		}
		if len(out) != 1 {
			t.Fatalf("Apply(%q) = %q", in, out)
		}
	}
}

func TestTransformMissingFunction(t *testing.T) {
	if _, err := NewTransform(`var x = 1`); err == nil {
		t.Fatal("expected error for script without transform function")
	}
}

func TestTransformCompileError(t *testing.T) {
	if _, err := NewTransform(`function transform( {`); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestTransformContextCancellation(t *testing.T) {
	tr, err := NewTransform(`function transform(text) { while (true) {} }`)
	if err != nil {
		t.Fatalf("NewTransform() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()
	if _, err := tr.Apply(ctx, "x", 1); err == nil || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context deadline error, got %v", err)
	}
}

func TestTransformImmediateCancel(t *testing.T) {
	tr, err := NewTransform(`function transform(text) { return text; }`)
	if err != nil {
		t.Fatalf("NewTransform() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := tr.Apply(ctx, "x", 1); err == nil || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled error, got %v", err)
	}
}
