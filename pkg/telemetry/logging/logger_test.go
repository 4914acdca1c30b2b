package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestNewRejectsBadConfig(t *testing.T) {
	if _, err := New(Config{Level: "loud"}); err == nil {
		t.Error("New() should reject an unknown level")
	}
	if _, err := New(Config{Format: "xml"}); err == nil {
		t.Error("New() should reject an unknown format")
	}
}

func TestNewDefaultsToTextInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Debug("hidden")
	logger.Info("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("debug line emitted at info level")
	}
	if !strings.Contains(out, "visible") {
		t.Error("info line missing")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"info", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warn", slog.LevelWarn, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		got, err := parseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLevel(%q) error = %v, wantErr %t", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRedactingLoggerMasksMessageAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Format: "json", RedactPII: true, Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("CPF 529.982.247-25 rejeitado", "beneficiario", "52998224725", "count", 3)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if msg := entry["msg"].(string); strings.Contains(msg, "529") {
		t.Errorf("message not redacted: %q", msg)
	}
	if v := entry["beneficiario"].(string); v != "***********" {
		t.Errorf("string attr not redacted: %q", v)
	}
	if v := entry["count"].(float64); v != 3 {
		t.Errorf("non-string attr altered: %v", v)
	}
}

func TestRedactingLoggerWithAttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Format: "json", RedactPII: true, Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.With("cpf", "52998224725").WithGroup("guia").Info("processando", "carteira", "numeroCarteira: 9988")

	out := buf.String()
	if strings.Contains(out, "52998224725") {
		t.Errorf("With() attr not redacted: %s", out)
	}
	if strings.Contains(out, "9988") {
		t.Errorf("grouped attr not redacted: %s", out)
	}
}

func TestRedactionDisabled(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Config{Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("CPF 529.982.247-25")
	if !strings.Contains(buf.String(), "529.982.247-25") {
		t.Error("redaction applied with RedactPII off")
	}
}
