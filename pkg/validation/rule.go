package validation

import (
	"context"

	"vitalis-hq/glosaguard/pkg/guide"
)

// Priority bands observed across the built-in rule set. These are a naming
// convention for readability, not enforced ranges.
const (
	// PriorityStructural is for structural preconditions (< 20).
	PriorityStructural = 10

	// PriorityIdentity is for field and document-identity checks (100s).
	PriorityIdentity = 100

	// PriorityCritical is for critical anti-rejection business rules (200s).
	PriorityCritical = 200

	// PriorityFinancial is for complementary and financial checks (240s+).
	PriorityFinancial = 240
)

// Rule is the contract every pluggable validation check satisfies.
//
// Implementations must be read-only with respect to the guide.Context:
// Validate reads the document, returns new findings, and performs no I/O
// besides optional calls into read-only lookup-table services. A rule
// tolerates absent fields by returning no findings, unless required-field
// absence is exactly what it checks.
type Rule interface {
	// ID is the globally unique, stable identifier. Never reused across
	// rule families, even after removal.
	ID() string

	// Name is the human-readable name (presentation only).
	Name() string

	// Description explains what the rule checks (presentation only).
	Description() string

	// Priority orders execution: lower runs earlier. Ties are stable but
	// unordered among themselves.
	Priority() int

	// AppliesTo reports whether the rule's preconditions (chiefly document
	// type) are met. Must be side-effect-free and cheap; it runs once per
	// rule per pass.
	AppliesTo(g *guide.Context) bool

	// Validate runs the check and returns zero or more findings. Blocking
	// work (awaiting a lazily-loaded lookup table) honors ctx. A returned
	// error marks the rule as skipped for the pass; it is never a finding.
	Validate(ctx context.Context, g *guide.Context) ([]Finding, error)
}
