// Package pdfcpu extracts text from PDFs with the pdfcpu toolkit.
//
// pdfcpu has no direct text extraction, so page content streams are
// dumped to a scratch directory and the text-showing operators are
// decoded from them.
package pdfcpu

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"docbrief/pkg/logger"
)

// Extractor reads PDF text via pdfcpu content extraction.
type Extractor struct {
	log       logger.Logger
	pageLimit int
	tempDir   string
}

// New creates a pdfcpu-backed extractor. Scratch files live under the
// system temp directory and are removed per call.
func New(log logger.Logger, pageLimit int) *Extractor {
	tempDir := filepath.Join(os.TempDir(), "docbrief-pdf")
	_ = os.MkdirAll(tempDir, 0755)

	return &Extractor{
		log:       log.Named("pdfcpu"),
		pageLimit: pageLimit,
		tempDir:   tempDir,
	}
}

// Extract writes data to a scratch file, extracts page content streams,
// and decodes the shown text in page order.
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := uuid.NewString()
	tempFile := filepath.Join(e.tempDir, fmt.Sprintf("extract_%s.pdf", id))
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return "", fmt.Errorf("write temp pdf: %w", err)
	}
	defer os.Remove(tempFile)

	pdfCtx, err := api.ReadContextFile(tempFile)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	pageCount := pdfCtx.PageCount
	pages := pageCount
	if e.pageLimit > 0 && pages > e.pageLimit {
		pages = e.pageLimit
		e.log.Info("page limit applied",
			logger.Int("total_pages", pageCount),
			logger.Int("processed_pages", pages))
	}

	outDir := filepath.Join(e.tempDir, fmt.Sprintf("pages_%s", id))
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	conf := model.NewDefaultConfiguration()
	selected := []string{fmt.Sprintf("1-%d", pages)}
	if err := api.ExtractContentFile(tempFile, outDir, selected, conf); err != nil {
		return "", fmt.Errorf("extract pdf content: %w", err)
	}

	pageTexts := make(map[int]string)
	entries, err := os.ReadDir(outDir)
	if err != nil {
		return "", fmt.Errorf("read scratch dir: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		pageNum, ok := pageNumberFromName(entry.Name())
		if !ok {
			continue
		}
		content, err := os.ReadFile(filepath.Join(outDir, entry.Name()))
		if err != nil {
			continue
		}
		pageTexts[pageNum] = decodeContentText(string(content))
	}

	var sb strings.Builder
	for pageNum := 1; pageNum <= pages; pageNum++ {
		text := strings.TrimSpace(pageTexts[pageNum])
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(text)
	}

	e.log.Debug("pdf text extracted",
		logger.Int("pages", pages),
		logger.Int("chars", sb.Len()))

	return sb.String(), nil
}

// pageNumberFromName parses the page number out of pdfcpu output names,
// which vary across versions ("page_3.txt", "doc_Content_page_3.txt").
func pageNumberFromName(name string) (int, bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	idx := strings.LastIndex(base, "page_")
	if idx == -1 {
		return 0, false
	}
	n, err := strconv.Atoi(base[idx+len("page_"):])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
