package analysis

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

// GeminiGenerator talks to Gemini through its OpenAI-compatible endpoint.
type GeminiGenerator struct {
	client  *openai.Client
	timeout time.Duration
}

func NewGeminiGenerator(apiKey, baseURL string, timeout time.Duration) *GeminiGenerator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &GeminiGenerator{
		client:  openai.NewClientWithConfig(cfg),
		timeout: timeout,
	}
}

func (g *GeminiGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are a geopolitical economist. You answer with a single JSON object and nothing else.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.4,
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini chat completion (%s): %w", model, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", errors.New("gemini returned empty response or choices")
	}

	return resp.Choices[0].Message.Content, nil
}
