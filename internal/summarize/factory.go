package summarize

import (
	"context"
	"fmt"
	"time"

	"docbrief/pkg/logger"
)

// Options selects and configures the LLM provider behind the pipeline.
type Options struct {
	Provider    string
	Concurrency int

	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration

	OpenAIKey      string
	OpenAIModel    string
	AnthropicKey   string
	AnthropicModel string
	GeminiKey      string
	GeminiModel    string
	OllamaEndpoint string
	OllamaModel    string
}

// New builds a summarization pipeline for the configured provider.
func New(ctx context.Context, opts Options, log logger.Logger) (*Pipeline, error) {
	var (
		provider Summarizer
		err      error
	)
	switch opts.Provider {
	case "openai":
		provider, err = NewOpenAI(log, opts.OpenAIKey, opts.OpenAIModel)
	case "anthropic":
		provider, err = NewAnthropic(log, opts.AnthropicKey, opts.AnthropicModel)
	case "gemini":
		provider, err = NewGemini(ctx, log, opts.GeminiKey, opts.GeminiModel)
	case "ollama":
		provider = NewOllama(log, opts.OllamaEndpoint, opts.OllamaModel)
	default:
		return nil, fmt.Errorf("unknown summarize provider: %s", opts.Provider)
	}
	if err != nil {
		return nil, err
	}

	return NewPipeline(log, PipelineOptions{
		Provider:     provider,
		ProviderName: opts.Provider,
		MaxAttempts:  opts.MaxAttempts,
		BaseDelay:    opts.BaseDelay,
		MaxDelay:     opts.MaxDelay,
		Concurrency:  opts.Concurrency,
	}), nil
}
