package tables

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound indicates the code is not present in the table.
var ErrNotFound = errors.New("code not found in table")

// Entry is one row of a lookup table.
type Entry struct {
	// Code is the table key (TUSS procedure, CBO occupation, ...).
	Code string `yaml:"code"`

	// Description is the human-readable label.
	Description string `yaml:"description"`

	// ValidFrom and ValidUntil bound the entry's currency window, in
	// "2006-01-02" form. Empty means unbounded.
	ValidFrom  string `yaml:"valid_from,omitempty"`
	ValidUntil string `yaml:"valid_until,omitempty"`
}

// Current reports whether the entry is current at the reference time.
func (e Entry) Current(at time.Time) bool {
	if e.ValidFrom != "" {
		from, err := time.Parse("2006-01-02", e.ValidFrom)
		if err != nil || at.Before(from) {
			return false
		}
	}
	if e.ValidUntil != "" {
		until, err := time.Parse("2006-01-02", e.ValidUntil)
		if err != nil || at.After(until) {
			return false
		}
	}
	return true
}

// Service is the capability a table-backed rule consumes. Implementations
// are read-only from the rule's perspective; blocking (a lazy first load)
// honors ctx.
type Service interface {
	// Exists reports whether the code is present in the table.
	Exists(ctx context.Context, code string) (bool, error)

	// IsCurrent reports whether the code is present and currently valid.
	IsCurrent(ctx context.Context, code string) (bool, error)

	// Get returns the entry for the code, or ErrNotFound.
	Get(ctx context.Context, code string) (*Entry, error)
}
