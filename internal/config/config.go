package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	// Path of the embedded SQLite database file. ":memory:" keeps
	// everything in RAM, which the tests rely on.
	DatabasePath string

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string

	Host string
	Port string

	Generation GenerationConfig
}

// GenerationConfig carries the tunables for AI recipe generation. The
// per-provider credentials live in the settings store, not here.
type GenerationConfig struct {
	Temperature     float64 `yaml:"temperature"`
	MaxTokens       int     `yaml:"max_tokens"`
	ProbeInput      string  `yaml:"probe_input"`
	ProbeMaxTokens  int     `yaml:"probe_max_tokens"`
	RequestTimeoutS int     `yaml:"request_timeout_seconds"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:                      os.Getenv("ENV"),
		ServiceName:              os.Getenv("SERVICE_NAME"),
		ServiceVersion:           os.Getenv("SERVICE_VERSION"),
		DatabasePath:             os.Getenv("DATABASE_PATH"),
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterOTLPHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		Host:                     os.Getenv("HOST"),
		Port:                     os.Getenv("PORT"),
	}

	// Load from YAML file if available
	if err := cfg.LoadFromYAML("config.yaml"); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	// Set defaults
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "gusteau"
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "1.0.0"
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = "gusteau.db"
	}
	if cfg.Host == "" {
		// All state is local, so only listen on loopback by default.
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.SetGenerationDefaults()

	return cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		Generation GenerationConfig `yaml:"generation"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlConfig.Generation.Temperature != 0 {
		c.Generation.Temperature = yamlConfig.Generation.Temperature
	}
	if yamlConfig.Generation.MaxTokens != 0 {
		c.Generation.MaxTokens = yamlConfig.Generation.MaxTokens
	}
	if yamlConfig.Generation.ProbeInput != "" {
		c.Generation.ProbeInput = yamlConfig.Generation.ProbeInput
	}
	if yamlConfig.Generation.ProbeMaxTokens != 0 {
		c.Generation.ProbeMaxTokens = yamlConfig.Generation.ProbeMaxTokens
	}
	if yamlConfig.Generation.RequestTimeoutS != 0 {
		c.Generation.RequestTimeoutS = yamlConfig.Generation.RequestTimeoutS
	}

	return nil
}

func (c *Config) SetGenerationDefaults() {
	if c.Generation.Temperature == 0 {
		c.Generation.Temperature = 0.7
	}
	if c.Generation.MaxTokens == 0 {
		c.Generation.MaxTokens = 1000
	}
	if c.Generation.ProbeInput == "" {
		c.Generation.ProbeInput = "scrambled eggs with tomato"
	}
	if c.Generation.ProbeMaxTokens == 0 {
		c.Generation.ProbeMaxTokens = 100
	}
	if c.Generation.RequestTimeoutS == 0 {
		c.Generation.RequestTimeoutS = 120
	}
}
