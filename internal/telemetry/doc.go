// Package telemetry provides OpenTelemetry initialization and helpers
// for tracing the Gusteau application.
//
// The package configures OTLP HTTP export for traces and logs. When no
// endpoint is configured, the no-op global providers stay in place and
// instrumentation costs nothing.
package telemetry
