package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGenerationConfig(t *testing.T) {
	// Create a temporary config file for testing
	configContent := `generation:
  temperature: 0.4
  max_tokens: 2000
  probe_input: plain omelette`

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config.yaml")

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg := &Config{}
	err = cfg.LoadFromYAML(configPath)
	if err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}

	if cfg.Generation.Temperature != 0.4 {
		t.Errorf("Expected temperature 0.4, got %v", cfg.Generation.Temperature)
	}
	if cfg.Generation.MaxTokens != 2000 {
		t.Errorf("Expected max_tokens 2000, got %d", cfg.Generation.MaxTokens)
	}
	if cfg.Generation.ProbeInput != "plain omelette" {
		t.Errorf("Expected probe_input 'plain omelette', got '%s'", cfg.Generation.ProbeInput)
	}
}

func TestLoadGenerationConfigPartial(t *testing.T) {
	// Test with partial config (only temperature specified)
	configContent := `generation:
  temperature: 1.1`

	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "test_config_partial.yaml")

	err := os.WriteFile(configPath, []byte(configContent), 0644)
	if err != nil {
		t.Fatalf("Failed to create test config file: %v", err)
	}

	cfg := &Config{}
	err = cfg.LoadFromYAML(configPath)
	if err != nil {
		t.Fatalf("Failed to load YAML config: %v", err)
	}
	cfg.SetGenerationDefaults()

	if cfg.Generation.Temperature != 1.1 {
		t.Errorf("Expected temperature 1.1, got %v", cfg.Generation.Temperature)
	}
	if cfg.Generation.MaxTokens != 1000 {
		t.Errorf("Expected default max_tokens 1000, got %d", cfg.Generation.MaxTokens)
	}
	if cfg.Generation.ProbeMaxTokens != 100 {
		t.Errorf("Expected default probe_max_tokens 100, got %d", cfg.Generation.ProbeMaxTokens)
	}
}

func TestLoadGenerationConfigDefaults(t *testing.T) {
	// Test without any YAML file
	cfg := &Config{}
	cfg.SetGenerationDefaults()

	if cfg.Generation.Temperature != 0.7 {
		t.Errorf("Expected default temperature 0.7, got %v", cfg.Generation.Temperature)
	}
	if cfg.Generation.MaxTokens != 1000 {
		t.Errorf("Expected default max_tokens 1000, got %d", cfg.Generation.MaxTokens)
	}
	if cfg.Generation.RequestTimeoutS != 120 {
		t.Errorf("Expected default request timeout 120s, got %d", cfg.Generation.RequestTimeoutS)
	}
}

func TestLoadFromYAML_MissingFile(t *testing.T) {
	cfg := &Config{}
	if err := cfg.LoadFromYAML("definitely-not-here.yaml"); err != nil {
		t.Errorf("missing config file should not be an error, got %v", err)
	}
}
