package generation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/platewise/gusteau/internal/config"
	apperrors "github.com/platewise/gusteau/internal/errors"
	"github.com/platewise/gusteau/internal/metrics"
	"github.com/platewise/gusteau/internal/services/ai"
	"github.com/platewise/gusteau/internal/settings"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Generator runs the recipe generation pipeline: validate config, build
// the prompt, dispatch one provider call, normalize the response. The
// provider config is an argument to every call; the generator itself
// holds no mutable per-call state, so a settings change during an
// in-flight generation cannot affect that invocation.
type Generator struct {
	genCfg      config.GenerationConfig
	newProvider func(ProviderType) (Provider, error)
}

// NewGenerator creates a generator using the registry provider factory.
func NewGenerator(genCfg config.GenerationConfig) *Generator {
	return &Generator{
		genCfg:      genCfg,
		newProvider: NewProvider,
	}
}

// Generate produces a recipe from free-text user input. Configuration and
// transport failures return an error; a malformed-but-received provider
// body does not, it degrades to the fallback recipe (Result.Degraded).
// The caller persists the result; Generate itself does not.
func (g *Generator) Generate(ctx context.Context, userInput string, cfg settings.ProviderConfig) (Result, error) {
	if cfg.Provider == "" {
		return Result{}, apperrors.NewConfigurationError("no AI provider selected", "PROVIDER_NOT_CONFIGURED")
	}
	if !KnownProvider(cfg.Provider) {
		return Result{}, apperrors.NewConfigurationError(
			fmt.Sprintf("unsupported AI provider: %q", cfg.Provider),
			"PROVIDER_UNSUPPORTED",
		)
	}
	if cfg.APIKey == "" {
		return Result{}, apperrors.NewConfigurationError(
			fmt.Sprintf("API key for %s is not set", cfg.Provider),
			"API_KEY_MISSING",
		)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel(cfg.Provider)
	}

	startTime := time.Now()
	attrs := []attribute.KeyValue{attribute.String("provider", cfg.Provider)}
	defer func() {
		duration := time.Since(startTime).Seconds()
		metrics.GenerationDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.RecipeGenerationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	provider, err := g.newProvider(ProviderType(cfg.Provider))
	if err != nil {
		return Result{}, err
	}

	prompt := ai.BuildRecipePrompt(userInput)

	if g.genCfg.RequestTimeoutS > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(g.genCfg.RequestTimeoutS)*time.Second)
		defer cancel()
	}

	raw, err := provider.Complete(ctx, prompt, cfg)
	if err != nil {
		return Result{}, err
	}

	result := ParseResponse(raw)
	if result.Degraded {
		metrics.FallbackRecipesTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
		slog.Warn("Provider response was not valid structured JSON, produced fallback recipe",
			"provider", cfg.Provider,
			"model", cfg.Model,
			"raw_length", len(result.Raw))
	}

	return result, nil
}

// ConnectionTestResult reports the outcome of a provider probe.
type ConnectionTestResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// TestConnection performs one real generation call with a fixed low-token
// probe input. Failures of any kind are captured into the result message;
// this method never returns an error and never persists anything.
func (g *Generator) TestConnection(ctx context.Context, cfg settings.ProviderConfig) ConnectionTestResult {
	probeCfg := cfg
	probeCfg.MaxTokens = g.genCfg.ProbeMaxTokens

	_, err := g.Generate(ctx, g.genCfg.ProbeInput, probeCfg)

	success := err == nil
	metrics.ConnectionTestsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", cfg.Provider),
		attribute.Bool("success", success),
	))

	if err != nil {
		return ConnectionTestResult{Success: false, Message: err.Error()}
	}
	return ConnectionTestResult{Success: true, Message: "Connection successful"}
}
