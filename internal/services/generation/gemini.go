package generation

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/platewise/gusteau/internal/errors"
	"github.com/platewise/gusteau/internal/metrics"
	"github.com/platewise/gusteau/internal/settings"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// GeminiProvider implements Provider for the Gemini generateContent API
type GeminiProvider struct {
	baseURL string
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider() *GeminiProvider {
	return &GeminiProvider{baseURL: Registry[ProviderGemini].BaseURL}
}

// Complete sends one generateContent request and unwraps the response text.
// Gemini authenticates with the API key as a query parameter, not a header.
func (p *GeminiProvider) Complete(ctx context.Context, prompt string, cfg settings.ProviderConfig) (string, error) {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", "gemini")}
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Parts []part `json:"parts"`
	}
	type generationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	}
	type generateRequest struct {
		Contents         []content        `json:"contents"`
		GenerationConfig generationConfig `json:"generationConfig"`
	}

	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     cfg.Temperature,
			MaxOutputTokens: cfg.MaxTokens,
		},
	}

	endpoint := strings.Replace(Registry[ProviderGemini].Endpoint, "{model}", cfg.Model, 1)
	requestURL := p.baseURL + endpoint + "?key=" + url.QueryEscape(cfg.APIKey)

	resp, err := postJSON(ctx, "Gemini", requestURL, nil, req)
	if err != nil {
		return "", err
	}

	var generateResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(resp.Body, &generateResp); err != nil {
		return "", err
	}

	if len(generateResp.Candidates) == 0 || len(generateResp.Candidates[0].Content.Parts) == 0 {
		return "", apperrors.NewProviderError("no response from Gemini", "PROVIDER_EMPTY_RESPONSE", resp.Status)
	}

	return generateResp.Candidates[0].Content.Parts[0].Text, nil
}
