// Package schema performs a lightweight structural pre-check on parsed TISS
// documents before the rule engine runs: envelope element, header presence,
// and standard version format.
//
// This is deliberately not an XSD validator. It catches documents so
// malformed that running the full rule catalog over them would only produce
// noise.
package schema
