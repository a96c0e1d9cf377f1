// Package gemini wraps the Google Gemini API behind the chat.Generator
// contract.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"
)

const (
	defaultModel   = "gemini-1.5-flash"
	defaultTimeout = 30 * time.Second
)

// Client performs text generation calls against the Gemini API.
type Client struct {
	client      *genai.Client
	model       string
	temperature float32
	timeout     time.Duration
}

// NewClient constructs a Gemini client. The API key is required; callers
// decide beforehand whether the fallback is configured at all.
func NewClient(ctx context.Context, apiKey, model string, temperature float32) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("gemini api key cannot be empty")
	}
	if strings.TrimSpace(model) == "" {
		model = defaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init gemini client: %w", err)
	}
	return &Client{
		client:      client,
		model:       model,
		temperature: temperature,
		timeout:     defaultTimeout,
	}, nil
}

// Generate performs one bounded completion call and returns the raw text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(c.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}
	return resp.Text(), nil
}
