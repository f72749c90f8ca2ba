package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"

	"github.com/gen2brain/go-fitz"

	"docbrief/pkg/logger"
)

// Rasterizer renders PDF pages to JPEG images with go-fitz, applying
// the preprocessing pipeline to each page before encoding.
type Rasterizer struct {
	log           logger.Logger
	pageLimit     int
	dpi           int
	preprocessors []Preprocessor
}

// NewRasterizer creates a page renderer. A dpi of 0 falls back to 150,
// which is enough for recognition without ballooning memory.
func NewRasterizer(log logger.Logger, pageLimit, dpi int) *Rasterizer {
	if dpi <= 0 {
		dpi = 150
	}
	return &Rasterizer{
		log:           log.Named("raster"),
		pageLimit:     pageLimit,
		dpi:           dpi,
		preprocessors: DefaultPipeline(),
	}
}

// Render rasterizes up to the page limit and returns JPEG bytes per page.
func (r *Rasterizer) Render(ctx context.Context, data []byte) ([][]byte, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer doc.Close()

	totalPages := doc.NumPage()
	pages := totalPages
	if r.pageLimit > 0 && pages > r.pageLimit {
		pages = r.pageLimit
		r.log.Info("page limit applied",
			logger.Int("total_pages", totalPages),
			logger.Int("processed_pages", pages))
	}

	images := make([][]byte, 0, pages)
	for i := 0; i < pages; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := doc.ImageDPI(i, float64(r.dpi))
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i+1, err)
		}

		processed, err := applyPipeline(r.preprocessors, img)
		if err != nil {
			return nil, fmt.Errorf("preprocess page %d: %w", i+1, err)
		}

		var buf bytes.Buffer
		if err := jpeg.Encode(&buf, processed, &jpeg.Options{Quality: 95}); err != nil {
			return nil, fmt.Errorf("encode page %d: %w", i+1, err)
		}
		images = append(images, buf.Bytes())
	}

	return images, nil
}
