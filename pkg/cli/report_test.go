package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"vitalis-hq/glosaguard/pkg/validation"
)

func sampleReports() []Report {
	rejected := &validation.Result{
		Errors: []validation.Finding{
			validation.NewError("DOC001", "cpf", "CPF \"123\" inválido").
				WithSuggestion("confira os dígitos verificadores do CPF"),
		},
		Warnings: []validation.Finding{
			validation.NewWarning("W002", "registroANS", "registro ANS ausente"),
		},
		ExecutedRules: []string{"cpf-valido", "registro-ans"},
		SkippedRules:  []string{"regime-internacao"},
		ExecutionTime: 1500 * time.Microsecond,
	}
	clean := &validation.Result{
		Errors:        []validation.Finding{},
		Warnings:      []validation.Finding{},
		ExecutedRules: []string{"cpf-valido"},
		SkippedRules:  []string{},
		ExecutionTime: 300 * time.Microsecond,
	}
	return []Report{
		NewReport("guia1.xml", "consulta", rejected),
		NewReport("guia2.xml", "sp-sadt", clean),
	}
}

func TestTextReportFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextReportFormatter{}).FormatTo(&buf, sampleReports()); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"guia1.xml (consulta): REJEITADA",
		"[ERRO] DOC001 cpf:",
		"sugestão: confira os dígitos verificadores do CPF",
		"[AVISO] W002 registroANS:",
		"1 erro(s), 1 aviso(s), 2 regra(s) executada(s), 1 pulada(s)",
		"guia2.xml (sp-sadt): OK",
		"0 erro(s), 0 aviso(s), 1 regra(s) executada(s), 0 pulada(s)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestJSONReportFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONReportFormatter{}).FormatTo(&buf, sampleReports()); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	var decoded []Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d reports, want 2", len(decoded))
	}
	if decoded[0].Valid || !decoded[1].Valid {
		t.Errorf("valid flags = %t/%t, want false/true", decoded[0].Valid, decoded[1].Valid)
	}
	if decoded[0].Errors[0].Code != "DOC001" {
		t.Errorf("first error code = %q", decoded[0].Errors[0].Code)
	}
}

func TestNewReportFormatter(t *testing.T) {
	if _, ok := NewReportFormatter(FormatJSON).(*JSONReportFormatter); !ok {
		t.Error("FormatJSON should yield a JSONReportFormatter")
	}
	if _, ok := NewReportFormatter(FormatText).(*TextReportFormatter); !ok {
		t.Error("FormatText should yield a TextReportFormatter")
	}
	if _, ok := NewReportFormatter("csv").(*TextReportFormatter); !ok {
		t.Error("unknown formats should fall back to text")
	}
}
