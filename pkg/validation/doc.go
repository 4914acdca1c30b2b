// Package validation provides the rule engine that predicts claim rejection
// (glosa) for TISS guide documents: rule registration, prioritization,
// applicability filtering, sequential or parallel execution, result
// aggregation, and per-rule fault isolation.
//
// # Architecture
//
// The engine uses a three-part design:
//
//  1. Registry - owns the registered rules, keyed by id, with runtime
//     enable/disable and priority-sorted enumeration
//  2. Rule - the pluggable contract every check satisfies
//  3. Engine - orchestrates one validation pass over a guide.Context and
//     aggregates findings into a Result
//
// # Evaluation Flow
//
//	guide.Context
//	       ↓
//	Registry (enabled rules, priority ascending)
//	       ↓
//	For each rule:
//	  AppliesTo(context)? No → skip
//	  Validate(ctx, context) → findings, bucketed by severity
//	  panic/error → rule recorded as skipped, pass continues
//	       ↓
//	Result (errors, warnings, executed, skipped, elapsed)
//
// # Failure Semantics
//
// Findings are data, never Go errors. A fault inside one rule's AppliesTo or
// Validate is logged and the rule is marked skipped; it never prevents the
// remaining rules from reporting. Only a bug in the engine's own bookkeeping
// propagates as an error.
//
// # Basic Usage
//
//	reg := validation.NewRegistry(logger)
//	reg.Register(myRule)
//	eng := validation.NewEngine(reg, validation.WithLogger(logger))
//
//	result := eng.Execute(ctx, guideCtx, validation.Options{})
//	if !result.Valid() {
//	    for _, f := range result.Errors {
//	        fmt.Println(f.Code, f.Message)
//	    }
//	}
//
// # Thread Safety
//
// The registry is safe for concurrent use. Validating multiple documents
// concurrently needs no coordination: each pass gets an independent
// guide.Context and Result.
package validation
