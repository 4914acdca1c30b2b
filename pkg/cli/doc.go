// Package cli provides shared helpers for the glosaguard command line:
// validation report formatting (text and JSON), CLI error types, signal
// handling, and batch progress reporting.
package cli
