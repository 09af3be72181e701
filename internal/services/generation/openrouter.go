package generation

import (
	"context"
	"encoding/json"
	"time"

	apperrors "github.com/platewise/gusteau/internal/errors"
	"github.com/platewise/gusteau/internal/metrics"
	"github.com/platewise/gusteau/internal/services/ai"
	"github.com/platewise/gusteau/internal/settings"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// OpenRouterProvider implements Provider for OpenRouter's chat-completion API
type OpenRouterProvider struct {
	baseURL string
}

// NewOpenRouterProvider creates a new OpenRouter provider
func NewOpenRouterProvider() *OpenRouterProvider {
	return &OpenRouterProvider{baseURL: Registry[ProviderOpenRouter].BaseURL}
}

// Complete sends one chat-completion request and unwraps the response text
func (p *OpenRouterProvider) Complete(ctx context.Context, prompt string, cfg settings.ProviderConfig) (string, error) {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", "openrouter")}
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	type message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	type chatRequest struct {
		Model       string    `json:"model"`
		Messages    []message `json:"messages"`
		Temperature float64   `json:"temperature"`
		MaxTokens   int       `json:"max_tokens"`
	}

	req := chatRequest{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Messages: []message{
			{Role: "system", Content: ai.SystemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	headers := map[string]string{
		"Authorization": "Bearer " + cfg.APIKey,
		// OpenRouter uses these for request attribution on free-tier models.
		"HTTP-Referer": "http://localhost",
		"X-Title":      "Gusteau",
	}

	resp, err := postJSON(ctx, "OpenRouter", p.baseURL+Registry[ProviderOpenRouter].Endpoint, headers, req)
	if err != nil {
		return "", err
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(resp.Body, &chatResp); err != nil {
		return "", err
	}

	if len(chatResp.Choices) == 0 {
		return "", apperrors.NewProviderError("no response from OpenRouter", "PROVIDER_EMPTY_RESPONSE", resp.Status)
	}

	return chatResp.Choices[0].Message.Content, nil
}
