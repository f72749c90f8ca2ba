package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"docbrief/pkg/logger"
)

// Tesseract recognizes text with a local tesseract installation.
// A fresh client per call keeps the cgo handle off shared state.
type Tesseract struct {
	log       logger.Logger
	languages []string
}

// NewTesseract creates a tesseract-backed recognizer.
func NewTesseract(log logger.Logger, languages []string) *Tesseract {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &Tesseract{
		log:       log.Named("tesseract"),
		languages: languages,
	}
}

// Recognize runs tesseract over a single page image.
func (t *Tesseract) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(strings.Join(t.languages, "+")); err != nil {
		return "", fmt.Errorf("set language: %w", err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_AUTO); err != nil {
		return "", fmt.Errorf("set page segmentation mode: %w", err)
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("recognize text: %w", err)
	}
	return text, nil
}
