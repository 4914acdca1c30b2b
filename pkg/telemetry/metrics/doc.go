// Package metrics exposes Prometheus metrics for validation passes, rule
// execution, and lookup-table loads.
//
// ValidationMetrics implements the validation.Recorder interface so the
// engine stays free of a Prometheus dependency.
package metrics
