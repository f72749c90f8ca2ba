package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"docbrief/pkg/logger"
)

// OpenAI summarizes chunks with the OpenAI chat completions API.
type OpenAI struct {
	log    logger.Logger
	client openai.Client
	model  string
}

// NewOpenAI builds an OpenAI-backed summarizer.
func NewOpenAI(log logger.Logger, apiKey, model string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: api key is required")
	}
	return &OpenAI{
		log:    log.Named("openai"),
		client: openai.NewClient(option.WithAPIKey(apiKey)),
		model:  model,
	}, nil
}

func (o *OpenAI) Summarize(ctx context.Context, text string, wordLimit int) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(BuildInstruction(wordLimit)),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", ErrInvalidResponse)
	}
	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("%w: empty message content", ErrInvalidResponse)
	}
	return out, nil
}
