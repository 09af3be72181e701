package generation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/platewise/gusteau/internal/config"
	apperrors "github.com/platewise/gusteau/internal/errors"
	"github.com/platewise/gusteau/internal/settings"
)

type stubProvider struct {
	raw string
	err error
}

func (p *stubProvider) Complete(ctx context.Context, prompt string, cfg settings.ProviderConfig) (string, error) {
	return p.raw, p.err
}

func testGenerator(p Provider) *Generator {
	g := NewGenerator(config.GenerationConfig{
		ProbeInput:     "scrambled eggs with tomato",
		ProbeMaxTokens: 100,
	})
	g.newProvider = func(ProviderType) (Provider, error) { return p, nil }
	return g
}

func TestGenerate_NoProviderSelected(t *testing.T) {
	g := testGenerator(&stubProvider{})

	_, err := g.Generate(context.Background(), "anything", settings.ProviderConfig{})
	if err == nil {
		t.Fatal("expected a configuration error")
	}

	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Type != apperrors.ErrorTypeConfiguration {
		t.Errorf("expected configuration error, got %v", err)
	}
}

func TestGenerate_UnknownProvider(t *testing.T) {
	g := testGenerator(&stubProvider{})

	cfg := settings.ProviderConfig{Provider: "chatgpt-at-home", APIKey: "key"}
	_, err := g.Generate(context.Background(), "anything", cfg)
	if err == nil {
		t.Fatal("expected a configuration error for unknown provider")
	}
}

func TestGenerate_MissingAPIKey(t *testing.T) {
	called := false
	g := testGenerator(&stubProvider{})
	g.newProvider = func(ProviderType) (Provider, error) {
		called = true
		return &stubProvider{}, nil
	}

	cfg := settings.ProviderConfig{Provider: "gemini"}
	_, err := g.Generate(context.Background(), "anything", cfg)
	if err == nil {
		t.Fatal("expected a configuration error for missing API key")
	}
	if called {
		t.Error("no provider call may happen before configuration validation passes")
	}
}

func TestGenerate_NormalizedResult(t *testing.T) {
	raw := `{"title": "Omelette", "ingredients": ["egg"], "instructions": ["whisk", "fry"]}`
	g := testGenerator(&stubProvider{raw: raw})

	cfg := settings.ProviderConfig{Provider: "gemini", APIKey: "key", Model: "gemini-2.0-flash"}
	result, err := g.Generate(context.Background(), "omelette", cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if result.Degraded {
		t.Error("expected a normalized result")
	}
	if result.Recipe.Title != "Omelette" {
		t.Errorf("expected title Omelette, got %q", result.Recipe.Title)
	}
}

func TestGenerate_DegradedResultIsNotAnError(t *testing.T) {
	g := testGenerator(&stubProvider{raw: "I had a wonderful time writing you this recipe in prose."})

	cfg := settings.ProviderConfig{Provider: "openrouter", APIKey: "key"}
	result, err := g.Generate(context.Background(), "anything", cfg)
	if err != nil {
		t.Fatalf("a malformed body must not surface as an error, got %v", err)
	}
	if !result.Degraded {
		t.Fatal("expected a degraded result")
	}
	if result.Recipe.Title != FallbackTitle {
		t.Errorf("expected fallback title, got %q", result.Recipe.Title)
	}
}

func TestGenerate_TransportErrorPropagates(t *testing.T) {
	wantErr := errors.New("connection refused")
	g := testGenerator(&stubProvider{err: wantErr})

	cfg := settings.ProviderConfig{Provider: "gemini", APIKey: "key"}
	_, err := g.Generate(context.Background(), "anything", cfg)
	if !errors.Is(err, wantErr) {
		t.Errorf("expected the transport error to propagate, got %v", err)
	}
}

func TestGenerate_DefaultsModelFromRegistry(t *testing.T) {
	var gotModel string
	g := testGenerator(nil)
	g.newProvider = func(ProviderType) (Provider, error) {
		return providerFunc(func(ctx context.Context, prompt string, cfg settings.ProviderConfig) (string, error) {
			gotModel = cfg.Model
			return `{"title": "T", "ingredients": ["x"], "instructions": ["y"]}`, nil
		}), nil
	}

	cfg := settings.ProviderConfig{Provider: "gemini", APIKey: "key"}
	if _, err := g.Generate(context.Background(), "anything", cfg); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if gotModel != "gemini-2.0-flash" {
		t.Errorf("expected registry default model, got %q", gotModel)
	}
}

type providerFunc func(ctx context.Context, prompt string, cfg settings.ProviderConfig) (string, error)

func (f providerFunc) Complete(ctx context.Context, prompt string, cfg settings.ProviderConfig) (string, error) {
	return f(ctx, prompt, cfg)
}

func TestTestConnection_InvalidKeyNeverThrows(t *testing.T) {
	// Real provider against a server that rejects the key.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "Invalid API key"}}`))
	}))
	defer server.Close()

	provider := NewOpenRouterProvider()
	provider.baseURL = server.URL

	g := testGenerator(provider)

	cfg := settings.ProviderConfig{Provider: "openrouter", APIKey: "bad-key", MaxTokens: 1000}
	result := g.TestConnection(context.Background(), cfg)

	if result.Success {
		t.Error("expected the connection test to fail")
	}
	if result.Message == "" {
		t.Error("expected a non-empty failure message")
	}
}

func TestTestConnection_Success(t *testing.T) {
	raw := `{"title": "Probe", "ingredients": ["egg"], "instructions": ["cook"]}`
	g := testGenerator(&stubProvider{raw: raw})

	cfg := settings.ProviderConfig{Provider: "gemini", APIKey: "key"}
	result := g.TestConnection(context.Background(), cfg)

	if !result.Success {
		t.Fatalf("expected success, got message %q", result.Message)
	}
}

func TestTestConnection_UnconfiguredProvider(t *testing.T) {
	g := testGenerator(&stubProvider{})

	result := g.TestConnection(context.Background(), settings.ProviderConfig{})
	if result.Success {
		t.Error("expected failure for unconfigured provider")
	}
	if result.Message == "" {
		t.Error("expected a non-empty failure message")
	}
}
