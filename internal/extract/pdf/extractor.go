// Package pdf extracts text from digital PDFs using ledongthuc/pdf.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"

	"docbrief/pkg/logger"
)

// Extractor reads the text layer of a PDF. Pages beyond the configured
// limit are ignored to bound latency on very large documents.
type Extractor struct {
	log       logger.Logger
	pageLimit int
	workers   int
}

// New creates a PDF text extractor.
func New(log logger.Logger, pageLimit, workers int) *Extractor {
	if workers < 1 {
		workers = 1
	}
	return &Extractor{
		log:       log.Named("pdf"),
		pageLimit: pageLimit,
		workers:   workers,
	}
}

// Extract parses data as a PDF and returns the concatenated page texts
// in page order.
func (e *Extractor) Extract(ctx context.Context, data []byte) (text string, err error) {
	// The underlying parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader := bytes.NewReader(data)
	doc, err := pdf.NewReader(reader, reader.Size())
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	totalPages := doc.NumPage()
	pages := totalPages
	if e.pageLimit > 0 && pages > e.pageLimit {
		pages = e.pageLimit
		e.log.Info("page limit applied",
			logger.Int("total_pages", totalPages),
			logger.Int("processed_pages", pages))
	}

	texts := make([]string, pages)

	g, ctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, e.workers)
	for i := 1; i <= pages; i++ {
		pageNum := i
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return ctx.Err()
			}
			return e.extractPage(doc, pageNum, texts)
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, t := range texts {
		if t == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(t)
	}

	e.log.Debug("pdf text extracted",
		logger.Int("pages", pages),
		logger.Int("chars", sb.Len()))

	return sb.String(), nil
}

func (e *Extractor) extractPage(doc *pdf.Reader, pageNum int, texts []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: pdf parser panic: %v", pageNum, r)
		}
	}()

	page := doc.Page(pageNum)
	if page.V.IsNull() {
		return nil
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return fmt.Errorf("page %d: %w", pageNum, err)
	}
	texts[pageNum-1] = strings.TrimSpace(text)
	return nil
}
