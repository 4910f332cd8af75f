// Command ocrbatch recognizes text in a batch of documents (PDF, TIFF,
// PNG, JPEG) and prints one combined report. Files are processed in
// argument order; a file that cannot be processed gets an inline failure
// placeholder instead of aborting the batch.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/wudi/ocrkit/batch"
	"github.com/wudi/ocrkit/document"
	"github.com/wudi/ocrkit/observability"
	"github.com/wudi/ocrkit/ocr"
	_ "github.com/wudi/ocrkit/ocr/tesseract"
	"github.com/wudi/ocrkit/progress"
	"github.com/wudi/ocrkit/raster"
	"github.com/wudi/ocrkit/report"
	"github.com/wudi/ocrkit/scripting"
)

type options struct {
	lang     string
	format   string
	out      string
	script   string
	scale    float64
	weighted bool
	quiet    bool
	paths    []string
}

func main() {
	godotenv.Load()
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ocrbatch: %v\n", err)
		os.Exit(2)
	}
	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "ocrbatch: %v\n", err)
		os.Exit(1)
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: ocrbatch [flags] <file>...\n")
		flag.PrintDefaults()
	}
	lang := flag.String("lang", envDefault("OCRKIT_LANG", "eng"), "Recognition language (eng, chi_sim, chi_tra)")
	format := flag.String("format", envDefault("OCRKIT_FORMAT", "text"), "Report format (text, markdown, html)")
	out := flag.String("out", "", "Write the report to a file instead of stdout")
	script := flag.String("script", "", "JavaScript file defining transform(text, page) for text cleanup")
	scale := flag.Float64("scale", raster.DefaultScale, "Render scale for PDF pages")
	weighted := flag.Bool("weighted", false, "Weight progress by queue position instead of per-call overwrite")
	quiet := flag.Bool("quiet", false, "Suppress logging and progress output")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return options{}, fmt.Errorf("no input files")
	}
	opts.lang = *lang
	opts.format = *format
	opts.out = *out
	opts.script = *script
	opts.scale = *scale
	opts.weighted = *weighted
	opts.quiet = *quiet
	opts.paths = flag.Args()
	return opts, nil
}

func run(opts options) error {
	lang, err := ocr.ParseLanguage(opts.lang)
	if err != nil {
		return err
	}

	var logger observability.Logger = observability.NopLogger{}
	if !opts.quiet {
		logger = observability.NewTextLogger(os.Stderr)
	}

	queue, err := buildQueue(opts.paths, logger)
	if err != nil {
		return err
	}

	batchOpts := []batch.Option{batch.WithLogger(logger)}
	if opts.weighted {
		batchOpts = append(batchOpts, batch.WithTracker(&progress.Weighted{}))
	}
	if !opts.quiet {
		batchOpts = append(batchOpts, batch.WithProgressFunc(func(p float64) {
			fmt.Fprintf(os.Stderr, "\rprogress: %3.0f%%", p)
		}))
	}
	if opts.script != "" {
		src, err := os.ReadFile(opts.script)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		tr, err := scripting.NewTransform(string(src))
		if err != nil {
			return err
		}
		batchOpts = append(batchOpts, batch.WithTransform(tr.Apply))
	}

	o := batch.New(nil, &raster.MuPDF{Scale: opts.scale}, batchOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rep, err := o.Run(ctx, lang, queue)
	if !opts.quiet {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return err
	}

	rendered, err := rep.Render(report.Format(opts.format))
	if err != nil {
		return err
	}
	if opts.out != "" {
		return os.WriteFile(opts.out, rendered, 0o644)
	}
	_, err = os.Stdout.Write(rendered)
	return err
}

// buildQueue validates and loads the selected files. Unsupported types are
// rejected here, before they enter the queue; mislabeled payloads are only
// warned about, since the declared type governs routing.
func buildQueue(paths []string, logger observability.Logger) ([]document.QueuedFile, error) {
	queue := make([]document.QueuedFile, 0, len(paths))
	for _, path := range paths {
		typ, err := document.TypeFromFilename(path)
		if err != nil {
			logger.Warn("skipping unsupported file", observability.String("file", path))
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if sniffed := document.Sniff(data); sniffed != "" && sniffed != typ {
			logger.Warn("declared type disagrees with content",
				observability.String("file", path),
				observability.String("declared", string(typ)),
				observability.String("sniffed", string(sniffed)),
			)
		}
		queue = append(queue, document.QueuedFile{Name: filepath.Base(path), Type: typ, Data: data})
	}
	if len(queue) == 0 {
		return nil, fmt.Errorf("no supported input files (want pdf, tiff, png, or jpeg)")
	}
	return queue, nil
}
