package validation

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNilContext indicates a validation pass was started without a
	// document context.
	ErrNilContext = errors.New("guide context cannot be nil")
)

// RuleFaultError records a fault inside a rule's own code (a panic or a
// returned error). It is logged and contained by the engine; it never
// surfaces as a finding.
type RuleFaultError struct {
	RuleID string
	Phase  string // "applies_to" or "validate"
	Panic  any
	Cause  error
}

// Error returns the error message.
func (e *RuleFaultError) Error() string {
	if e.Panic != nil {
		return fmt.Sprintf("rule %s: panic during %s: %v", e.RuleID, e.Phase, e.Panic)
	}
	return fmt.Sprintf("rule %s: %s failed: %v", e.RuleID, e.Phase, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *RuleFaultError) Unwrap() error {
	return e.Cause
}
