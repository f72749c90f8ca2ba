package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"docbrief/pkg/logger"
)

// anthropicMaxTokens bounds completion length. Generous enough for the
// default word limit with headroom.
const anthropicMaxTokens = 4096

// Anthropic summarizes chunks with the Anthropic Messages API.
type Anthropic struct {
	log    logger.Logger
	client anthropic.Client
	model  string
}

// NewAnthropic builds an Anthropic-backed summarizer.
func NewAnthropic(log logger.Logger, apiKey, model string) (*Anthropic, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("anthropic: api key is required")
	}
	return &Anthropic{
		log:    log.Named("anthropic"),
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

func (a *Anthropic) Summarize(ctx context.Context, text string, wordLimit int) (string, error) {
	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(a.model),
		MaxTokens: anthropicMaxTokens,
		System: []anthropic.TextBlockParam{
			{Text: BuildInstruction(wordLimit)},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("message create: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("%w: no text blocks in response", ErrInvalidResponse)
	}
	return out, nil
}
