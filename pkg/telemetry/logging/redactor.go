package logging

import "regexp"

// Redactor masks patient identifiers in strings headed for log output.
type Redactor struct {
	patterns []*redactPattern
}

// redactPattern pairs a compiled regex with its replacement.
type redactPattern struct {
	name        string
	regex       *regexp.Regexp
	replacement string
}

// Built-in pattern names.
const (
	PatternCPF      = "cpf"
	PatternCNS      = "cns"
	PatternCarteira = "carteira"
	PatternEmail    = "email"
)

// NewRedactor creates a Redactor with the built-in identifier patterns.
func NewRedactor() *Redactor {
	return &Redactor{
		patterns: []*redactPattern{
			// Formatted CPF: 123.456.789-09
			{
				name:        PatternCPF,
				regex:       regexp.MustCompile(`\b\d{3}\.\d{3}\.\d{3}-\d{2}\b`),
				replacement: "***.***.***-**",
			},
			// CNS: 15 contiguous digits
			{
				name:        PatternCNS,
				regex:       regexp.MustCompile(`\b\d{15}\b`),
				replacement: "***************",
			},
			// Bare CPF: 11 contiguous digits, checked after CNS so the
			// longer match wins
			{
				name:        PatternCPF,
				regex:       regexp.MustCompile(`\b\d{11}\b`),
				replacement: "***********",
			},
			// Carteira numbers tagged by field name in messages
			{
				name:        PatternCarteira,
				regex:       regexp.MustCompile(`(?i)(carteira[^\s:=]*[:=]\s*)\S+`),
				replacement: "$1***",
			},
			{
				name:        PatternEmail,
				regex:       regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
				replacement: "***@***",
			},
		},
	}
}

// RedactString masks every identifier occurrence in value.
func (r *Redactor) RedactString(value string) string {
	if value == "" {
		return value
	}
	redacted := value
	for _, p := range r.patterns {
		redacted = p.regex.ReplaceAllString(redacted, p.replacement)
	}
	return redacted
}
