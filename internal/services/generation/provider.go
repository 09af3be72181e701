// Package generation turns free-text user input into a persisted,
// normalized recipe via a remote AI provider call, with deterministic
// degradation when the provider returns an unparseable body.
package generation

import (
	"context"

	"github.com/platewise/gusteau/internal/settings"
)

// ProviderType identifies one entry of the provider registry.
type ProviderType string

const (
	ProviderGemini     ProviderType = "gemini"
	ProviderOpenRouter ProviderType = "openrouter"
)

// ProviderSpec describes how one provider is called. Endpoint may contain
// a {model} placeholder that is substituted at request time.
type ProviderSpec struct {
	BaseURL      string
	Endpoint     string
	DefaultModel string
}

// Registry is the fixed set of supported providers.
var Registry = map[ProviderType]ProviderSpec{
	ProviderGemini: {
		BaseURL:      "https://generativelanguage.googleapis.com",
		Endpoint:     "/v1beta/models/{model}:generateContent",
		DefaultModel: "gemini-2.0-flash",
	},
	ProviderOpenRouter: {
		BaseURL:      "https://openrouter.ai/api/v1",
		Endpoint:     "/chat/completions",
		DefaultModel: "deepseek/deepseek-chat-v3-0324:free",
	},
}

// KnownProvider reports whether the identifier is a registry member.
func KnownProvider(provider string) bool {
	_, ok := Registry[ProviderType(provider)]
	return ok
}

// DefaultModel returns the registry default model for the provider, or ""
// for unknown providers.
func DefaultModel(provider string) string {
	return Registry[ProviderType(provider)].DefaultModel
}

// Provider dispatches one completion request and returns the raw text
// payload extracted from the provider-specific response envelope.
type Provider interface {
	Complete(ctx context.Context, prompt string, cfg settings.ProviderConfig) (string, error)
}
