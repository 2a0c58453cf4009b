// Package tracer wraps the OpenTelemetry SDK for the search node.
//
// NewClient installs a global tracer provider (optionally exporting over
// OTLP/HTTP) and returns a *Tracer with StartSpan, RecordErrorOnSpan and
// SetAttributes helpers. A nil *Tracer is valid and produces no-op spans.
package tracer
