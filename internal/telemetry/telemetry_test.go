package telemetry

import (
	"context"
	"testing"
)

func TestInitTelemetry_NoEndpoint(t *testing.T) {
	// Without an endpoint telemetry is disabled, not an error.
	shutdown, err := InitTelemetry(context.Background(), "gusteau", "dev", "test", "", nil)
	if err != nil {
		t.Fatalf("InitTelemetry failed: %v", err)
	}
	if shutdown != nil {
		t.Fatal("expected no shutdown func when telemetry is disabled")
	}
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		in           string
		wantHost     string
		wantBasePath string
		wantInsecure bool
	}{
		{"https://otlp.example.com", "otlp.example.com", "", false},
		{"http://localhost:4318", "localhost:4318", "", true},
		{"https://otlp.example.com/v1/traces", "otlp.example.com", "", false},
		{"https://otlp.example.com/otlp/v1/logs", "otlp.example.com", "/otlp", false},
		{"otlp.example.com/otlp/", "otlp.example.com", "/otlp", false},
	}

	for _, tt := range tests {
		host, basePath, insecure := parseEndpoint(tt.in)
		if host != tt.wantHost || basePath != tt.wantBasePath || insecure != tt.wantInsecure {
			t.Errorf("parseEndpoint(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.in, host, basePath, insecure, tt.wantHost, tt.wantBasePath, tt.wantInsecure)
		}
	}
}

func TestTracer(t *testing.T) {
	if Tracer("gusteau-test") == nil {
		t.Fatal("Tracer returned nil")
	}
}

func TestMiddleware(t *testing.T) {
	if Middleware() == nil {
		t.Fatal("Middleware returned nil")
	}
}
