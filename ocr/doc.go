package ocr

// Package ocr defines the recognition-engine contract for the batch
// pipeline. Engines are stateful: they are initialized once per run with a
// language, reused across every image in the batch, and closed exactly once.
// The interfaces are intentionally small and transport-agnostic so engines
// can be backed by native libraries or remote APIs without leaking
// provider-specific concerns into callers.
