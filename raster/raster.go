// Package raster wraps the document renderer behind a small seam so the
// batch pipeline can be driven by fakes in tests. The bundled implementation
// uses MuPDF via go-fitz.
package raster

import (
	"fmt"
	"image"

	"github.com/gen2brain/go-fitz"
)

// DefaultScale is the render scale applied to every page. 1.5× balances
// small-font recognition accuracy against recognition latency.
const DefaultScale = 1.5

// baseDPI is the PDF user-space resolution; scale multiplies it.
const baseDPI = 72

// RenderError reports a failure to open a document or render one of its
// pages. It is file-scoped: the orchestrator converts it into a failure
// placeholder for the offending file. Page is 1-based; zero means the
// document could not be opened at all.
type RenderError struct {
	Page int
	Err  error
}

func (e *RenderError) Error() string {
	if e.Page == 0 {
		return fmt.Sprintf("open document: %v", e.Err)
	}
	return fmt.Sprintf("render page %d: %v", e.Page, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Document is an open multi-page document. Pages are rendered one at a
// time; each returned bitmap is independent of the document's internal
// state, so callers may drop it before rendering the next page.
type Document interface {
	PageCount() int
	// RenderPage renders the page with the given 1-based index.
	RenderPage(page int) (image.Image, error)
	Close() error
}

// Renderer opens raw document bytes for page-by-page rendering.
type Renderer interface {
	Open(data []byte) (Document, error)
}

// MuPDF renders documents with the MuPDF library via go-fitz.
type MuPDF struct {
	// Scale multiplies the base 72 DPI resolution. Zero means DefaultScale.
	Scale float64
}

// NewMuPDF returns a renderer at the default scale.
func NewMuPDF() *MuPDF { return &MuPDF{Scale: DefaultScale} }

// Open parses the document from memory. Invalid bytes yield a RenderError.
func (r *MuPDF) Open(data []byte) (Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, &RenderError{Err: err}
	}
	scale := r.Scale
	if scale <= 0 {
		scale = DefaultScale
	}
	return &muDocument{doc: doc, dpi: baseDPI * scale}, nil
}

type muDocument struct {
	doc *fitz.Document
	dpi float64
}

func (d *muDocument) PageCount() int { return d.doc.NumPage() }

func (d *muDocument) RenderPage(page int) (image.Image, error) {
	if page < 1 || page > d.doc.NumPage() {
		return nil, &RenderError{Page: page, Err: fmt.Errorf("page index out of range [1, %d]", d.doc.NumPage())}
	}
	img, err := d.doc.ImageDPI(page-1, d.dpi)
	if err != nil {
		return nil, &RenderError{Page: page, Err: err}
	}
	return img, nil
}

func (d *muDocument) Close() error { return d.doc.Close() }
