// Package guide provides the document model for TISS claim guides: the
// parsed node tree, guide type classification, the per-validation context,
// and the field extraction algorithm used by validation rules.
//
// # Document Model
//
// A parsed guide is an untyped recursive tree:
//
//	Node = Scalar | Sequence | Mapping
//
// The tree mirrors the source XML: repeated sibling elements become a
// Sequence, singleton elements become a Mapping entry, and elements that
// carry both attributes and character data keep their text under the
// reserved "#text" key. Element keys retain their namespace prefix
// (e.g. "ans:numeroGuia") exactly as written in the source.
//
// # Field Extraction
//
// ExtractFieldValues locates every value for a semantically named field
// anywhere in the tree, regardless of nesting depth or namespace prefix.
// Matching is by substring on the prefix-stripped, lower-cased key, so one
// call can find related fields across schema variations. Callers that need
// precision use ExtractExactFieldValues instead.
//
// # Classification
//
// DetectGuiaType classifies a document by ordered substring sniffing on the
// raw XML. Batch (lote) detection runs first because a batch document's raw
// text also contains the markers of the individual guides it bundles.
package guide
