package guide

import "strconv"

// TextKey is the reserved mapping key that holds an element's character data
// when the element also carries attributes or child elements.
const TextKey = "#text"

// Node is one node of a parsed guide tree. Exactly three concrete types
// implement it: Scalar, Sequence, and Mapping.
type Node interface {
	isNode()
}

// ScalarKind discriminates the value held by a Scalar.
type ScalarKind int

const (
	// KindString holds trimmed character data.
	KindString ScalarKind = iota

	// KindNumber holds character data that parsed as a number. Leading
	// zeros are lost at parse time; the extractor recovers them for known
	// identifier fields.
	KindNumber

	// KindBool holds character data that parsed as a boolean.
	KindBool
)

// Scalar is a leaf value.
type Scalar struct {
	Kind ScalarKind
	Str  string
	Num  float64
	Bool bool
}

// Sequence is an ordered list of sibling nodes (repeated XML elements).
type Sequence []Node

// Mapping is an element's children keyed by their (possibly
// namespace-prefixed) element or attribute name.
type Mapping map[string]Node

func (Scalar) isNode()   {}
func (Sequence) isNode() {}
func (Mapping) isNode()  {}

// String returns a string Scalar.
func String(s string) Scalar { return Scalar{Kind: KindString, Str: s} }

// Number returns a numeric Scalar.
func Number(f float64) Scalar { return Scalar{Kind: KindNumber, Num: f} }

// Bool returns a boolean Scalar.
func Bool(b bool) Scalar { return Scalar{Kind: KindBool, Bool: b} }

// Text renders the scalar as its source text.
func (s Scalar) Text() string {
	switch s.Kind {
	case KindNumber:
		return strconv.FormatFloat(s.Num, 'f', -1, 64)
	case KindBool:
		return strconv.FormatBool(s.Bool)
	default:
		return s.Str
	}
}
