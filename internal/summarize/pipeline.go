package summarize

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"docbrief/pkg/logger"
	"docbrief/pkg/retry"
)

// Pipeline issues one provider call per chunk, retrying transient
// failures, and joins the per-chunk summaries in chunk order.
type Pipeline struct {
	log          logger.Logger
	provider     Summarizer
	providerName string
	policy       retry.Policy
	concurrency  int
}

// PipelineOptions configures chunk orchestration.
type PipelineOptions struct {
	Provider     Summarizer
	ProviderName string
	MaxAttempts  int
	BaseDelay    time.Duration
	MaxDelay     time.Duration
	// Concurrency bounds parallel provider calls. 1 reproduces strictly
	// sequential behavior; output order is fixed by chunk index either way.
	Concurrency int
}

// NewPipeline wires a provider into the chunk loop.
func NewPipeline(log logger.Logger, opts PipelineOptions) *Pipeline {
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &Pipeline{
		log:          log.Named("summarize"),
		provider:     opts.Provider,
		providerName: opts.ProviderName,
		policy: retry.Policy{
			MaxAttempts: opts.MaxAttempts,
			BaseDelay:   opts.BaseDelay,
			MaxDelay:    opts.MaxDelay,
		},
		concurrency: concurrency,
	}
}

// Run summarizes every chunk and joins the results with blank lines.
// Any chunk failing after retries fails the whole run.
func (p *Pipeline) Run(ctx context.Context, chunks []string, wordLimit int) (string, error) {
	if len(chunks) == 0 {
		return "", &Error{Provider: p.providerName, Err: fmt.Errorf("no chunks to summarize")}
	}

	results := make([]string, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, p.concurrency)
	for i, chunk := range chunks {
		idx, text := i, chunk
		g.Go(func() error {
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-gctx.Done():
				return gctx.Err()
			}
			out, err := p.summarizeChunk(gctx, idx, text, wordLimit)
			if err != nil {
				return err
			}
			results[idx] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", &Error{Provider: p.providerName, Err: err}
	}

	return strings.TrimSpace(strings.Join(results, "\n\n")), nil
}

func (p *Pipeline) summarizeChunk(ctx context.Context, idx int, text string, wordLimit int) (string, error) {
	log := p.log.With(
		logger.Int("chunk", idx+1),
		logger.Int("chunk_chars", utf8.RuneCountInString(text)))

	policy := p.policy
	policy.OnRetry = func(attempt int, delay time.Duration, err error) {
		log.Warn("transient provider error, retrying",
			logger.Int("attempt", attempt),
			logger.Duration("delay", delay),
			logger.Error(err))
	}

	var out string
	err := policy.Do(ctx, IsTransient, func(ctx context.Context) error {
		var callErr error
		out, callErr = p.provider.Summarize(ctx, text, wordLimit)
		return callErr
	})
	if err != nil {
		return "", fmt.Errorf("chunk %d: %w", idx+1, err)
	}

	log.Debug("chunk summarized",
		logger.Int("summary_chars", utf8.RuneCountInString(out)))
	return out, nil
}
