package rules

import (
	"log/slog"

	"vitalis-hq/glosaguard/pkg/tables"
	"vitalis-hq/glosaguard/pkg/validation"
)

// Deps are the external collaborators the built-in catalog needs. Nil table
// services disable the corresponding lookup rules (they execute and emit
// nothing); nil Logger falls back to slog.Default.
type Deps struct {
	Procedures  tables.Service
	Occupations tables.Service
	Logger      *slog.Logger
	Recorder    validation.Recorder
}

// RegisterBuiltin registers the full built-in rule catalog on reg.
func RegisterBuiltin(reg *validation.Registry, deps Deps) {
	families := [][]validation.Rule{
		structuralRules(),
		documentRules(),
		dateRules(),
		lookupRules(deps.Procedures, deps.Occupations),
		loteRules(),
		businessRules(),
		financialRules(),
	}
	for _, family := range families {
		for _, r := range family {
			reg.Register(r)
		}
	}
}

// NewEngine builds an engine pre-loaded with the built-in catalog. Each call
// owns an independent registry, so enabling and disabling rules on one engine
// never leaks into another.
func NewEngine(deps Deps) *validation.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reg := validation.NewRegistry(logger)
	RegisterBuiltin(reg, deps)

	opts := []validation.Option{validation.WithLogger(logger)}
	if deps.Recorder != nil {
		opts = append(opts, validation.WithRecorder(deps.Recorder))
	}
	return validation.NewEngine(reg, opts...)
}
