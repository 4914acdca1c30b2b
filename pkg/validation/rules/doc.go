// Package rules provides the built-in anti-glosa rule catalog and the
// builder that assembles a ready-to-use validation engine.
//
// Rules are grouped in family files, each family owning a code prefix and a
// priority band:
//
//   - structural.go  - structural preconditions (priority < 20, codes W###)
//   - document.go    - document identity checks (100s, DOC###)
//   - dates.go       - date logic (140s, DATA###)
//   - lookup.go      - lookup-table checks (170s, TAB###)
//   - lote.go        - batch and duplication checks (200s, LOTE###/DUPL###)
//   - business.go    - critical anti-rejection rules (210s-230s, NEG###)
//   - financial.go   - financial checks (240s+, FIN###)
//
// The bands are a readability convention, not enforced ranges.
//
// NewEngine builds a registry, registers the whole catalog, and returns an
// owned engine; hosts call it once at startup. There is no global registry
// and no import-time registration.
package rules
