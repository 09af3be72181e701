package generation

import (
	"fmt"

	apperrors "github.com/platewise/gusteau/internal/errors"
)

// NewProvider creates the provider client for a registry member
func NewProvider(providerType ProviderType) (Provider, error) {
	switch providerType {
	case ProviderGemini:
		return NewGeminiProvider(), nil
	case ProviderOpenRouter:
		return NewOpenRouterProvider(), nil
	default:
		return nil, apperrors.NewConfigurationError(
			fmt.Sprintf("unsupported AI provider: %q", providerType),
			"PROVIDER_UNSUPPORTED",
		)
	}
}
