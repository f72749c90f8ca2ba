package summarize

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"docbrief/pkg/logger"
)

// Gemini summarizes chunks with the Gemini API.
type Gemini struct {
	log    logger.Logger
	client *genai.Client
	model  string
}

// NewGemini builds a Gemini-backed summarizer.
func NewGemini(ctx context.Context, log logger.Logger, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Gemini{
		log:    log.Named("gemini"),
		client: client,
		model:  model,
	}, nil
}

func (g *Gemini) Summarize(ctx context.Context, text string, wordLimit int) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(BuildInstruction(wordLimit), genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			sb.WriteString(part.Text)
		}
		break
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("%w: no candidate text in response", ErrInvalidResponse)
	}
	return out, nil
}
