// Package tracing wraps OpenTelemetry so that the backend client and the
// store can emit spans without importing the SDK directly. Applications that
// never call Init get no-op spans.
package tracing
