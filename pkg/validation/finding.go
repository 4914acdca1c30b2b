package validation

import (
	"github.com/google/uuid"
)

// Severity classifies a finding. Severity alone determines whether a finding
// blocks the document or is advisory.
type Severity string

const (
	// SeverityError blocks the document.
	SeverityError Severity = "error"

	// SeverityWarning is advisory.
	SeverityWarning Severity = "warning"

	// SeverityInfo is advisory.
	SeverityInfo Severity = "info"
)

// Finding is one reported validation occurrence, whether a hard error or an
// advisory warning. Rules emit zero or more findings per pass.
type Finding struct {
	// ID uniquely identifies this occurrence.
	ID string `json:"id"`

	// Line and Column locate the finding in the source document. Rules work
	// against the flattened tree and largely cannot compute positions; 0/0
	// means unknown.
	Line   int `json:"line"`
	Column int `json:"column"`

	// Message is the human-readable description.
	Message string `json:"message"`

	// Code is the machine-parseable identifier, namespaced by rule family
	// (DOC, DATA, TAB, LOTE, DUPL, NEG, FIN, W).
	Code string `json:"code,omitempty"`

	// Severity determines bucket placement in the Result.
	Severity Severity `json:"severity"`

	// Field names the document field the finding pertains to, when known.
	Field string `json:"field,omitempty"`

	// Suggestion is an optional remediation hint.
	Suggestion string `json:"suggestion,omitempty"`
}

// NewFinding creates a finding with a fresh occurrence ID and no source
// location.
func NewFinding(code string, severity Severity, message string) Finding {
	return Finding{
		ID:       uuid.NewString(),
		Message:  message,
		Code:     code,
		Severity: severity,
	}
}

// NewError creates a blocking finding.
func NewError(code, field, message string) Finding {
	f := NewFinding(code, SeverityError, message)
	f.Field = field
	return f
}

// NewWarning creates an advisory finding.
func NewWarning(code, field, message string) Finding {
	f := NewFinding(code, SeverityWarning, message)
	f.Field = field
	return f
}

// WithSuggestion returns a copy of the finding carrying a remediation hint.
func (f Finding) WithSuggestion(s string) Finding {
	f.Suggestion = s
	return f
}

// categorize buckets findings by severity: exactly SeverityError goes to the
// errors bucket, everything else (warning, info) to warnings. This is the
// single authority for the error/warning partition.
func categorize(findings []Finding, errors, warnings *[]Finding) {
	for _, f := range findings {
		if f.Severity == SeverityError {
			*errors = append(*errors, f)
		} else {
			*warnings = append(*warnings, f)
		}
	}
}
