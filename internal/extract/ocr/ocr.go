// Package ocr recovers text from scanned documents by rasterizing each
// page and running the images through a text recognizer.
package ocr

import (
	"context"
	"fmt"
	"strings"

	"docbrief/pkg/logger"
)

// Recognizer turns one raster image into text.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// PageRenderer turns document bytes into per-page raster images.
type PageRenderer interface {
	Render(ctx context.Context, data []byte) ([][]byte, error)
}

// Engine is the OCR fallback extractor: render pages, recognize each,
// join the results in page order.
type Engine struct {
	log      logger.Logger
	renderer PageRenderer
	rec      Recognizer
}

// NewEngine wires a renderer with a recognizer.
func NewEngine(log logger.Logger, renderer PageRenderer, rec Recognizer) *Engine {
	return &Engine{
		log:      log.Named("ocr"),
		renderer: renderer,
		rec:      rec,
	}
}

// Extract runs recognition over every rendered page of data.
func (e *Engine) Extract(ctx context.Context, data []byte) (string, error) {
	images, err := e.renderer.Render(ctx, data)
	if err != nil {
		return "", fmt.Errorf("render pages: %w", err)
	}

	var sb strings.Builder
	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := e.rec.Recognize(ctx, img)
		if err != nil {
			return "", fmt.Errorf("recognize page %d: %w", i+1, err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(text)
	}

	e.log.Info("ocr pass finished",
		logger.Int("pages", len(images)),
		logger.Int("chars", sb.Len()))

	return sb.String(), nil
}
