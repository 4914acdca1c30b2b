package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"vitalis-hq/glosaguard/pkg/validation"
)

// OutputFormat selects the report output format.
type OutputFormat string

const (
	// FormatText is the human-readable format (default).
	FormatText OutputFormat = "text"
	// FormatJSON is machine-readable JSON.
	FormatJSON OutputFormat = "json"
)

// Report is the per-document validation report rendered by the CLI.
type Report struct {
	File          string               `json:"file"`
	GuiaType      string               `json:"guia_type"`
	Valid         bool                 `json:"valid"`
	Errors        []validation.Finding `json:"errors"`
	Warnings      []validation.Finding `json:"warnings"`
	ExecutedRules []string             `json:"executed_rules"`
	SkippedRules  []string             `json:"skipped_rules"`
	ExecutionTime time.Duration        `json:"execution_time_ns"`
}

// NewReport builds a Report from an engine result.
func NewReport(file, guiaType string, result *validation.Result) Report {
	return Report{
		File:          file,
		GuiaType:      guiaType,
		Valid:         result.Valid(),
		Errors:        result.Errors,
		Warnings:      result.Warnings,
		ExecutedRules: result.ExecutedRules,
		SkippedRules:  result.SkippedRules,
		ExecutionTime: result.ExecutionTime,
	}
}

// ReportFormatter renders validation reports.
type ReportFormatter interface {
	FormatTo(w io.Writer, reports []Report) error
}

// NewReportFormatter creates a formatter for the specified format. Unknown
// formats fall back to text.
func NewReportFormatter(format OutputFormat) ReportFormatter {
	switch format {
	case FormatJSON:
		return &JSONReportFormatter{Indent: true}
	default:
		return &TextReportFormatter{}
	}
}

// TextReportFormatter renders reports for terminals.
type TextReportFormatter struct{}

// FormatTo writes one section per document: status line, findings grouped
// by severity, then a one-line execution summary.
func (f *TextReportFormatter) FormatTo(w io.Writer, reports []Report) error {
	for i, r := range reports {
		if i > 0 {
			fmt.Fprintln(w)
		}

		status := "OK"
		if !r.Valid {
			status = "REJEITADA"
		}
		fmt.Fprintf(w, "%s (%s): %s\n", r.File, r.GuiaType, status)

		for _, finding := range r.Errors {
			writeFinding(w, "ERRO", finding)
		}
		for _, finding := range r.Warnings {
			writeFinding(w, "AVISO", finding)
		}

		fmt.Fprintf(w, "  %d erro(s), %d aviso(s), %d regra(s) executada(s), %d pulada(s) em %s\n",
			len(r.Errors), len(r.Warnings),
			len(r.ExecutedRules), len(r.SkippedRules),
			r.ExecutionTime.Round(time.Microsecond))
	}
	return nil
}

func writeFinding(w io.Writer, label string, f validation.Finding) {
	fmt.Fprintf(w, "  [%s] %s %s: %s\n", label, f.Code, f.Field, f.Message)
	if f.Suggestion != "" {
		fmt.Fprintf(w, "         sugestão: %s\n", f.Suggestion)
	}
}

// JSONReportFormatter renders reports as a JSON array.
type JSONReportFormatter struct {
	Indent bool
}

// FormatTo encodes the reports to w.
func (f *JSONReportFormatter) FormatTo(w io.Writer, reports []Report) error {
	encoder := json.NewEncoder(w)
	if f.Indent {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(reports)
}
