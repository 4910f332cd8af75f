package ocr

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"golang.org/x/image/tiff"

	"github.com/wudi/ocrkit/document"
)

// InputOption mutates an OCR input before submission.
type InputOption func(*Input)

// WithDPI overrides the DPI value on the OCR input.
func WithDPI(dpi int) InputOption {
	return func(in *Input) { in.DPI = dpi }
}

// WithMetadata sets provider-specific metadata for the input.
func WithMetadata(metadata map[string]string) InputOption {
	return func(in *Input) {
		if len(metadata) == 0 {
			in.Metadata = nil
			return
		}
		in.Metadata = make(map[string]string, len(metadata))
		for k, v := range metadata {
			in.Metadata[k] = v
		}
	}
}

// InputFromImage converts a rendered page bitmap into an OCR input using PNG
// encoding. pageIndex is the 1-based page ordinal; the generated ID is stable
// per page to simplify correlation with downstream results.
func InputFromImage(img image.Image, pageIndex int, opts ...InputOption) (Input, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return Input{}, fmt.Errorf("encode page bitmap: %w", err)
	}
	in := Input{
		ID:        fmt.Sprintf("page-%d", pageIndex),
		Image:     buf.Bytes(),
		Format:    ImageFormatPNG,
		PageIndex: pageIndex,
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in, nil
}

// InputFromFile converts a single-image queued file into an OCR input. PNG
// and JPEG payloads pass through untouched; TIFF payloads are decoded and
// re-encoded as PNG so every provider sees one of two formats.
func InputFromFile(f document.QueuedFile, opts ...InputOption) (Input, error) {
	in := Input{ID: f.Name}
	switch f.Type {
	case document.TypePNG:
		in.Image = f.Data
		in.Format = ImageFormatPNG
	case document.TypeJPEG:
		in.Image = f.Data
		in.Format = ImageFormatJPEG
	case document.TypeTIFF:
		img, err := tiff.Decode(bytes.NewReader(f.Data))
		if err != nil {
			return Input{}, fmt.Errorf("decode tiff %s: %w", f.Name, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return Input{}, fmt.Errorf("re-encode tiff %s: %w", f.Name, err)
		}
		in.Image = buf.Bytes()
		in.Format = ImageFormatPNG
	default:
		return Input{}, fmt.Errorf("file %s is not a single-image type", f.Name)
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in, nil
}
