// Package observability wires lifecycle hooks to concrete backends:
// Prometheus collectors for metrics and an OpenTelemetry OTLP exporter for
// traces. Configuration is an explicit struct loaded from an optional YAML
// file merged with SPRIG_TRACING__* environment variables; with nothing
// set, every entry point here is a no-op.
package observability
