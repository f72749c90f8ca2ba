// Package extract turns uploaded document bytes into normalized plain text.
package extract

import (
	"context"
	"fmt"
	"strings"
)

// Extractor produces plain text from raw document bytes.
type Extractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// ErrorKind classifies extraction failures.
type ErrorKind string

const (
	// KindParseFailure means the document could not be decoded at all.
	KindParseFailure ErrorKind = "parse failure"
	// KindInsufficientText means decoding worked but the document yielded
	// less text than the configured minimum.
	KindInsufficientText ErrorKind = "insufficient text"
)

// Error is returned for any failed extraction.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("extraction failed: %s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("extraction failed: %s", string(e.Kind))
}

func (e *Error) Unwrap() error { return e.Err }

// NormalizeText collapses every run of whitespace to a single space and
// trims the ends.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
