// Package scripting runs user-supplied JavaScript against recognized page
// text. Scripts define a global `transform(text, page)` function returning
// the cleaned-up text; a typical use is stripping recurring scan artifacts
// or normalizing whitespace without rebuilding the binary.
package scripting

import (
	"context"
	"fmt"

	"github.com/dop251/goja"
)

// Transform holds a compiled script. Not safe for concurrent use; the batch
// applies it from a single goroutine.
type Transform struct {
	vm *goja.Runtime
	fn goja.Callable
}

// NewTransform compiles the script and resolves its transform function.
func NewTransform(script string) (*Transform, error) {
	vm := goja.New()
	if _, err := vm.RunString(script); err != nil {
		return nil, fmt.Errorf("compile transform script: %w", err)
	}
	fn, ok := goja.AssertFunction(vm.Get("transform"))
	if !ok {
		return nil, fmt.Errorf("script does not define a transform(text, page) function")
	}
	return &Transform{vm: vm, fn: fn}, nil
}

// Apply runs the transform for one page's text. page is the 1-based page
// ordinal, or zero for standalone images. Cancelling ctx interrupts a
// runaway script; the Transform remains usable afterwards.
func (t *Transform) Apply(ctx context.Context, text string, page int) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	done := make(chan struct{})
	defer close(done)
	defer t.vm.ClearInterrupt()

	go func() {
		select {
		case <-ctx.Done():
			t.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	val, err := t.fn(goja.Undefined(), t.vm.ToValue(text), t.vm.ToValue(page))
	if err != nil {
		if interruptedErr, ok := err.(*goja.InterruptedError); ok {
			if cause := interruptedErr.Unwrap(); cause != nil {
				return "", cause
			}
			return "", context.Canceled
		}
		return "", fmt.Errorf("transform script: %w", err)
	}
	return val.String(), nil
}
