// Package telemetry groups the observability subpackages.
//
// Subpackages:
//   - logging: structured logging built on log/slog with patient data
//     redaction
//   - metrics: Prometheus metrics for validation passes and rule execution
package telemetry
