// Package document defines the queued-file model and the routing decision
// between the single-image and multi-page recognition paths. Classification
// trusts the declared type; callers validate and sniff before queueing.
package document

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// Type identifies the declared content type of a queued file.
type Type string

const (
	TypePDF  Type = "application/pdf"
	TypeTIFF Type = "image/tiff"
	TypePNG  Type = "image/png"
	TypeJPEG Type = "image/jpeg"
)

// Valid reports whether t is one of the supported input types.
func (t Type) Valid() bool {
	switch t {
	case TypePDF, TypeTIFF, TypePNG, TypeJPEG:
		return true
	}
	return false
}

// Kind selects the processing path for a queued file.
type Kind int

const (
	// KindSingleImage routes the file's raw bytes directly to recognition.
	KindSingleImage Kind = iota
	// KindMultiPage routes the file through rasterization page by page.
	KindMultiPage
)

func (k Kind) String() string {
	if k == KindMultiPage {
		return "multi-page"
	}
	return "single-image"
}

// QueuedFile is one entry in a batch. Immutable for the duration of a run;
// insertion order in the batch determines report order.
type QueuedFile struct {
	Name string
	Type Type
	Data []byte
}

// UnsupportedTypeError reports a file whose declared type is not accepted.
// The selection surface raises it before the file enters a queue.
type UnsupportedTypeError struct {
	Name     string
	Declared string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q for %s", e.Declared, e.Name)
}

// Classify routes a queued file to a processing path. PDF documents take the
// multi-page path; every other supported type is recognized as one image.
func Classify(f QueuedFile) (Kind, error) {
	switch f.Type {
	case TypePDF:
		return KindMultiPage, nil
	case TypeTIFF, TypePNG, TypeJPEG:
		return KindSingleImage, nil
	}
	return 0, &UnsupportedTypeError{Name: f.Name, Declared: string(f.Type)}
}

var extTypes = map[string]Type{
	".pdf":  TypePDF,
	".tif":  TypeTIFF,
	".tiff": TypeTIFF,
	".png":  TypePNG,
	".jpg":  TypeJPEG,
	".jpeg": TypeJPEG,
}

// TypeFromFilename derives the declared type from a file extension. Names
// without a recognized extension yield an UnsupportedTypeError.
func TypeFromFilename(name string) (Type, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if t, ok := extTypes[ext]; ok {
		return t, nil
	}
	return "", &UnsupportedTypeError{Name: name, Declared: ext}
}

// Sniff detects the content type from leading magic bytes. It returns the
// empty Type when the signature is not one of the supported formats. Sniffing
// never overrides the declared type for routing; it exists so the selection
// surface can warn about mislabeled files.
func Sniff(data []byte) Type {
	switch {
	case bytes.HasPrefix(data, []byte("%PDF")):
		return TypePDF
	case bytes.HasPrefix(data, []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}):
		return TypePNG
	case bytes.HasPrefix(data, []byte{0xFF, 0xD8, 0xFF}):
		return TypeJPEG
	case bytes.HasPrefix(data, []byte{0x49, 0x49, 0x2A, 0x00}),
		bytes.HasPrefix(data, []byte{0x4D, 0x4D, 0x00, 0x2A}):
		return TypeTIFF
	}
	return ""
}
