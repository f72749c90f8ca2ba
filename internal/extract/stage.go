package extract

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"docbrief/pkg/logger"
)

// Output is the result of a successful extraction pass.
type Output struct {
	Text    string
	UsedOCR bool
}

// Stage runs the primary extractor and, when configured, falls back to
// text recognition for documents the primary pass cannot read or that
// yield too little text (typically scans).
type Stage struct {
	primary  Extractor
	fallback Extractor // nil when no OCR backend is configured
	minChars int
	log      logger.Logger
}

// NewStage wires the primary extractor with an optional OCR fallback.
func NewStage(primary, fallback Extractor, minChars int, log logger.Logger) *Stage {
	return &Stage{
		primary:  primary,
		fallback: fallback,
		minChars: minChars,
		log:      log.Named("extract"),
	}
}

// Run extracts text from data, normalizes it, and enforces the minimum
// length. All failures come back as *Error.
func (s *Stage) Run(ctx context.Context, data []byte) (Output, error) {
	text, primaryErr := s.primary.Extract(ctx, data)
	if primaryErr == nil {
		text = NormalizeText(text)
		if utf8.RuneCountInString(text) >= s.minChars {
			return Output{Text: text}, nil
		}
	}

	if s.fallback == nil {
		if primaryErr != nil {
			return Output{}, &Error{Kind: KindParseFailure, Err: primaryErr}
		}
		return Output{}, &Error{
			Kind: KindInsufficientText,
			Err:  fmt.Errorf("extracted %d chars, need at least %d", utf8.RuneCountInString(text), s.minChars),
		}
	}

	if primaryErr != nil {
		s.log.Warn("primary extraction failed, trying ocr", logger.Error(primaryErr))
	} else {
		s.log.Info("text below minimum, trying ocr",
			logger.Int("chars", utf8.RuneCountInString(text)),
			logger.Int("min_chars", s.minChars))
	}

	ocrText, ocrErr := s.fallback.Extract(ctx, data)
	if ocrErr != nil {
		return Output{}, &Error{Kind: KindParseFailure, Err: errors.Join(primaryErr, ocrErr)}
	}

	ocrText = NormalizeText(ocrText)
	if utf8.RuneCountInString(ocrText) < s.minChars {
		return Output{}, &Error{
			Kind: KindInsufficientText,
			Err:  fmt.Errorf("ocr recovered %d chars, need at least %d", utf8.RuneCountInString(ocrText), s.minChars),
		}
	}

	return Output{Text: ocrText, UsedOCR: true}, nil
}
