// Package settings resolves the flat persisted key/value namespace into
// the active provider configuration. Credentials are stored under keys
// namespaced by provider so switching providers never leaks the previous
// provider's API key into the active config.
package settings

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/platewise/gusteau/internal/store"
)

// Documented defaults for an unconfigured system.
const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 1000
)

// ProviderConfig is the transient, resolved configuration for one
// generation call. It is never persisted as a unit.
type ProviderConfig struct {
	Provider    string  `json:"provider"`
	APIKey      string  `json:"apiKey"`
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
}

// CredentialField identifies one of the per-provider credential fields.
type CredentialField string

const (
	FieldAPIKey CredentialField = "apiKey"
	FieldModel  CredentialField = "model"
)

// StorageKey maps a (provider, field) pair onto its storage key. All
// credential key composition goes through here; nothing else in the
// codebase concatenates provider prefixes.
func StorageKey(provider string, field CredentialField) string {
	return fmt.Sprintf("%s_%s", provider, field)
}

// splitCredentialKey is the inverse of StorageKey. ok is false for plain,
// non-namespaced keys.
func splitCredentialKey(key string) (provider string, field CredentialField, ok bool) {
	for _, f := range []CredentialField{FieldAPIKey, FieldModel} {
		suffix := "_" + string(f)
		if strings.HasSuffix(key, suffix) && len(key) > len(suffix) {
			return strings.TrimSuffix(key, suffix), f, true
		}
	}
	return "", "", false
}

// Resolver translates persisted settings into the active ProviderConfig.
type Resolver struct {
	settings     *store.SettingsStore
	defaultModel func(provider string) string
}

// NewResolver creates a resolver. defaultModel maps a provider identifier
// to its registry-defined default model; unknown providers yield "".
func NewResolver(settings *store.SettingsStore, defaultModel func(provider string) string) *Resolver {
	return &Resolver{
		settings:     settings,
		defaultModel: defaultModel,
	}
}

// LoadActiveConfig reads all persisted settings and resolves them into the
// active config. Credential keys namespaced to other providers are
// ignored; the current provider's entries are projected onto the
// unprefixed APIKey/Model fields. Missing values resolve to defaults.
func (r *Resolver) LoadActiveConfig(ctx context.Context) (ProviderConfig, error) {
	cfg := ProviderConfig{
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultMaxTokens,
	}

	all, err := r.settings.GetAll(ctx)
	if err != nil {
		return cfg, err
	}

	for key, value := range all {
		if _, _, namespaced := splitCredentialKey(key); namespaced {
			// Belongs to a specific provider, handled below.
			continue
		}
		switch key {
		case "provider":
			cfg.Provider = value
		case "temperature":
			if t, err := strconv.ParseFloat(value, 64); err == nil {
				cfg.Temperature = t
			}
		case "maxTokens":
			if n, err := strconv.Atoi(value); err == nil {
				cfg.MaxTokens = n
			}
		}
	}

	if cfg.Provider != "" {
		if apiKey, ok := all[StorageKey(cfg.Provider, FieldAPIKey)]; ok {
			cfg.APIKey = apiKey
		}
		if model, ok := all[StorageKey(cfg.Provider, FieldModel)]; ok {
			cfg.Model = model
		}
	}

	return cfg, nil
}

// SelectProvider persists the new provider choice and resolves its
// credentials. When the provider has no stored model yet, the registry
// default is persisted so future loads are stable. The returned config
// never mixes in the prior provider's apiKey or model.
func (r *Resolver) SelectProvider(ctx context.Context, provider string) (ProviderConfig, error) {
	if err := r.settings.Put(ctx, "provider", provider); err != nil {
		return ProviderConfig{}, err
	}

	if provider != "" {
		model, ok, err := r.settings.Get(ctx, StorageKey(provider, FieldModel))
		if err != nil {
			return ProviderConfig{}, err
		}
		if !ok || model == "" {
			if fallback := r.defaultModel(provider); fallback != "" {
				if err := r.settings.Put(ctx, StorageKey(provider, FieldModel), fallback); err != nil {
					return ProviderConfig{}, err
				}
			}
		}
	}

	return r.LoadActiveConfig(ctx)
}

// SaveField persists one settings field. The apiKey and model fields are
// rewritten under the current provider's namespaced key so credentials
// never collide across providers.
func (r *Resolver) SaveField(ctx context.Context, key, value string) error {
	storageKey := key
	if key == string(FieldAPIKey) || key == string(FieldModel) {
		provider, ok, err := r.settings.Get(ctx, "provider")
		if err != nil {
			return err
		}
		if ok && provider != "" {
			storageKey = StorageKey(provider, CredentialField(key))
		}
	}
	return r.settings.Put(ctx, storageKey, value)
}

// ResetAll clears every persisted setting, provider-namespaced entries
// included, returning the config to defaults.
func (r *Resolver) ResetAll(ctx context.Context) error {
	return r.settings.Clear(ctx)
}

// IsConfigured reports whether the system can reach a provider: a
// provider is selected and it has an API key.
func IsConfigured(cfg ProviderConfig) bool {
	return cfg.Provider != "" && cfg.APIKey != ""
}
