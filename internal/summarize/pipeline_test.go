package summarize

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docbrief/pkg/logger"
	"docbrief/pkg/retry"
)

// fakeProvider scripts Summarize responses per call for a given chunk.
type fakeProvider struct {
	mu    sync.Mutex
	calls int
	fn    func(call int, text string, wordLimit int) (string, error)
}

func (f *fakeProvider) Summarize(ctx context.Context, text string, wordLimit int) (string, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()
	return f.fn(call, text, wordLimit)
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newTestPipeline(provider Summarizer, opts PipelineOptions) *Pipeline {
	opts.Provider = provider
	if opts.ProviderName == "" {
		opts.ProviderName = "fake"
	}
	if opts.MaxAttempts == 0 {
		opts.MaxAttempts = 3
	}
	if opts.BaseDelay == 0 {
		opts.BaseDelay = time.Millisecond
	}
	if opts.MaxDelay == 0 {
		opts.MaxDelay = 2 * time.Millisecond
	}
	return NewPipeline(logger.NewTestLogger(), opts)
}

func TestPipelineSingleChunk(t *testing.T) {
	provider := &fakeProvider{fn: func(call int, text string, wordLimit int) (string, error) {
		assert.Equal(t, "the chunk", text)
		assert.Equal(t, 2000, wordLimit)
		return "a short summary", nil
	}}
	p := newTestPipeline(provider, PipelineOptions{})

	out, err := p.Run(context.Background(), []string{"the chunk"}, 2000)
	require.NoError(t, err)
	assert.Equal(t, "a short summary", out)
	assert.Equal(t, 1, provider.callCount())
}

func TestPipelineJoinsChunksInOrder(t *testing.T) {
	provider := &fakeProvider{fn: func(call int, text string, wordLimit int) (string, error) {
		return "summary of " + text, nil
	}}
	p := newTestPipeline(provider, PipelineOptions{Concurrency: 3})

	out, err := p.Run(context.Background(), []string{"alpha", "beta", "gamma"}, 500)
	require.NoError(t, err)
	assert.Equal(t, "summary of alpha\n\nsummary of beta\n\nsummary of gamma", out)
	assert.Equal(t, 3, provider.callCount())
}

func TestPipelineTrimsJoinedSummary(t *testing.T) {
	provider := &fakeProvider{fn: func(call int, text string, wordLimit int) (string, error) {
		return "  padded summary \n", nil
	}}
	p := newTestPipeline(provider, PipelineOptions{})

	out, err := p.Run(context.Background(), []string{"chunk"}, 100)
	require.NoError(t, err)
	assert.Equal(t, "padded summary", out)
}

func TestPipelineRetriesTransientErrors(t *testing.T) {
	provider := &fakeProvider{fn: func(call int, text string, wordLimit int) (string, error) {
		if call < 3 {
			return "", fmt.Errorf("status 429 Too Many Requests")
		}
		return "recovered", nil
	}}
	p := newTestPipeline(provider, PipelineOptions{})

	out, err := p.Run(context.Background(), []string{"chunk"}, 100)
	require.NoError(t, err)
	assert.Equal(t, "recovered", out)
	assert.Equal(t, 3, provider.callCount())
}

func TestPipelineDoesNotRetryInvalidResponse(t *testing.T) {
	provider := &fakeProvider{fn: func(call int, text string, wordLimit int) (string, error) {
		return "", fmt.Errorf("%w: empty message content", ErrInvalidResponse)
	}}
	p := newTestPipeline(provider, PipelineOptions{ProviderName: "openai"})

	_, err := p.Run(context.Background(), []string{"chunk"}, 100)
	require.Error(t, err)
	assert.Equal(t, 1, provider.callCount())
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.NotErrorIs(t, err, retry.ErrAttemptsExhausted)

	var sErr *Error
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, "openai", sErr.Provider)
}

func TestPipelineExhaustsRetryBudget(t *testing.T) {
	provider := &fakeProvider{fn: func(call int, text string, wordLimit int) (string, error) {
		return "", fmt.Errorf("model overloaded, try again later")
	}}
	p := newTestPipeline(provider, PipelineOptions{ProviderName: "anthropic", MaxAttempts: 3})

	_, err := p.Run(context.Background(), []string{"chunk"}, 100)
	require.Error(t, err)
	assert.Equal(t, 3, provider.callCount())
	assert.ErrorIs(t, err, retry.ErrAttemptsExhausted)
	assert.Contains(t, err.Error(), "exceeded retry attempts")

	var sErr *Error
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, "anthropic", sErr.Provider)
}

func TestPipelineFailsOneChunkFailsRun(t *testing.T) {
	provider := &fakeProvider{fn: func(call int, text string, wordLimit int) (string, error) {
		if text == "beta" {
			return "", fmt.Errorf("%w: no candidates", ErrInvalidResponse)
		}
		return "summary of " + text, nil
	}}
	p := newTestPipeline(provider, PipelineOptions{})

	_, err := p.Run(context.Background(), []string{"alpha", "beta"}, 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidResponse)
	assert.Contains(t, err.Error(), "chunk 2")
}

func TestPipelineRejectsEmptyInput(t *testing.T) {
	provider := &fakeProvider{fn: func(call int, text string, wordLimit int) (string, error) {
		return "unreachable", nil
	}}
	p := newTestPipeline(provider, PipelineOptions{})

	_, err := p.Run(context.Background(), nil, 100)
	require.Error(t, err)
	assert.Equal(t, 0, provider.callCount())
}

func TestPipelineHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	provider := &fakeProvider{fn: func(call int, text string, wordLimit int) (string, error) {
		cancel()
		return "", fmt.Errorf("rate limit hit")
	}}
	p := newTestPipeline(provider, PipelineOptions{MaxAttempts: 5})

	_, err := p.Run(ctx, []string{"chunk"}, 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, provider.callCount())
}

func TestBuildInstruction(t *testing.T) {
	got := BuildInstruction(250)
	assert.Contains(t, got, "under 250 words")
	assert.Contains(t, got, "key facts, names, and figures")
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &Error{Provider: "gemini", Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "gemini")
	assert.Contains(t, err.Error(), "boom")
}
