// Package logging builds the application logger on top of log/slog.
//
// Healthcare claims carry patient identifiers (CPF, CNS, carteira numbers)
// that must not leak into log output. When redaction is enabled, every
// string attribute passes through a Redactor that masks those identifiers
// before the record is written.
package logging
