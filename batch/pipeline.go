package batch

import (
	"context"
	"fmt"
	"strings"

	"github.com/wudi/ocrkit/observability"
	"github.com/wudi/ocrkit/ocr"
	"github.com/wudi/ocrkit/raster"
)

// processPages drives the multi-page path: rasterize and recognize pages in
// strictly ascending order starting at 1, labelling each page's text in the
// accumulator. Each page's raster is scoped to one loop iteration, so at
// most one page bitmap is live at a time. If any page fails, the whole
// document fails; no partial per-page results are kept.
func (o *Orchestrator) processPages(ctx context.Context, log observability.Logger, engine ocr.Engine, doc raster.Document) (string, error) {
	n := doc.PageCount()
	log.Debug("document opened", observability.Int(observability.MetricPageCount, n))

	var b strings.Builder
	for page := 1; page <= n; page++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		img, err := doc.RenderPage(page)
		if err != nil {
			return "", err
		}
		in, err := ocr.InputFromImage(img, page)
		if err != nil {
			return "", err
		}
		res, err := engine.Recognize(ctx, in)
		if err != nil {
			return "", err
		}
		text := res.PlainText
		if o.transform != nil {
			if text, err = o.transform(ctx, text, page); err != nil {
				return "", err
			}
		}
		fmt.Fprintf(&b, "Page %d:\n%s\n\n", page, text)
	}
	return b.String(), nil
}
