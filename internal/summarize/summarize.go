// Package summarize turns text chunks into summaries through pluggable
// LLM providers.
package summarize

import (
	"context"
	"fmt"
)

// Summarizer produces a summary for one chunk of text. wordLimit is a
// target length hint woven into the instruction, not a hard cap.
type Summarizer interface {
	Summarize(ctx context.Context, text string, wordLimit int) (string, error)
}

// Error wraps any failure out of the summarization stage.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("summarization failed (%s): %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// BuildInstruction returns the fixed instruction prefix for a chunk
// request, carrying the word limit hint.
func BuildInstruction(wordLimit int) string {
	return fmt.Sprintf(
		"Summarize this text concisely, preserving the key facts, names, and figures. Keep the summary under %d words.",
		wordLimit,
	)
}
