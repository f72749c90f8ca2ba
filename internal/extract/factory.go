package extract

import (
	"context"
	"fmt"

	"docbrief/internal/extract/ocr"
	"docbrief/internal/extract/pdf"
	"docbrief/internal/extract/pdfcpu"
	"docbrief/pkg/logger"
)

// Options configures the extraction stage and its backends.
type Options struct {
	Backend      string // pdftext or pdfcpu
	PageLimit    int
	MinTextChars int
	PageWorkers  int

	OCRBackend   string // tesseract, textract, or off
	OCRLanguages []string
	OCRDPI       int

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// New builds the extraction stage for the configured backends.
func New(ctx context.Context, opts Options, log logger.Logger) (*Stage, error) {
	var primary Extractor
	switch opts.Backend {
	case "", "pdftext":
		primary = pdf.New(log, opts.PageLimit, opts.PageWorkers)
	case "pdfcpu":
		primary = pdfcpu.New(log, opts.PageLimit)
	default:
		return nil, fmt.Errorf("unknown extractor backend %q", opts.Backend)
	}

	fallback, err := newFallback(ctx, opts, log)
	if err != nil {
		return nil, err
	}

	return NewStage(primary, fallback, opts.MinTextChars, log), nil
}

func newFallback(ctx context.Context, opts Options, log logger.Logger) (Extractor, error) {
	switch opts.OCRBackend {
	case "", "off":
		return nil, nil
	case "tesseract":
		renderer := ocr.NewRasterizer(log, opts.PageLimit, opts.OCRDPI)
		return ocr.NewEngine(log, renderer, ocr.NewTesseract(log, opts.OCRLanguages)), nil
	case "textract":
		rec, err := ocr.NewTextract(ctx, log, opts.AWSRegion, opts.AWSAccessKeyID, opts.AWSSecretAccessKey)
		if err != nil {
			return nil, fmt.Errorf("init textract: %w", err)
		}
		renderer := ocr.NewRasterizer(log, opts.PageLimit, opts.OCRDPI)
		return ocr.NewEngine(log, renderer, rec), nil
	default:
		return nil, fmt.Errorf("unknown ocr backend %q", opts.OCRBackend)
	}
}
