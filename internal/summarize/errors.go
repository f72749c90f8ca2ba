package summarize

import (
	"errors"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// ErrInvalidResponse marks a provider response that came back without
// usable text. Structurally broken responses are not retried; retrying
// cannot fix them.
var ErrInvalidResponse = errors.New("invalid response format")

// IsTransient reports whether err looks like a rate-limit or overload
// condition that a later attempt may clear. Typed SDK errors are
// checked first, then a string heuristic covers providers without
// typed errors.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrInvalidResponse) {
		return false
	}

	var oaiErr *openai.Error
	if errors.As(err, &oaiErr) {
		return oaiErr.StatusCode == http.StatusTooManyRequests
	}
	var antErr *anthropic.Error
	if errors.As(err, &antErr) {
		return antErr.StatusCode == http.StatusTooManyRequests
	}
	var genErr genai.APIError
	if errors.As(err, &genErr) {
		return genErr.Code == http.StatusTooManyRequests
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"429",
		"rate limit",
		"too many requests",
		"resource_exhausted",
		"quota",
		"overloaded",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
