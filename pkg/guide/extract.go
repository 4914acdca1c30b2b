package guide

import (
	"strings"
)

// identifier fields whose leading zeros were lost to numeric coercion at
// parse time, and the widths they are padded back to.
var padWidths = []struct {
	substr string
	width  int
}{
	{"cnpj", 14},
	{"cns", 15},
	{"cpf", 11},
}

// ExtractFieldValues returns every value in the tree whose key contains
// fieldName. Keys are compared with their namespace prefix stripped and
// lower-cased, so "numeroguia" finds "ans:numeroGuia".
//
// Matching is deliberately by substring: one call finds semantically related
// fields across schema variations ("data" matches "dataAtendimento" and
// "dataSolicitacao"). Callers that need an exact field use
// ExtractExactFieldValues.
//
// Values are deduplicated in insertion order. The first value is a
// representative occurrence, not a canonical one.
func ExtractFieldValues(root Node, fieldName string) []string {
	return extract(root, strings.ToLower(fieldName), false)
}

// ExtractExactFieldValues is the precision variant: a key matches only when
// its cleaned form equals fieldName exactly. Used where the substring policy
// would collide with a longer field that contains the target as a substring.
func ExtractExactFieldValues(root Node, fieldName string) []string {
	return extract(root, strings.ToLower(fieldName), true)
}

// ExtractFieldOccurrences returns every occurrence of the field without
// deduplication. Rules that count repetitions (duplicate guide numbers)
// need the raw occurrence list that ExtractFieldValues collapses.
func ExtractFieldOccurrences(root Node, fieldName string) []string {
	w := &walker{target: strings.ToLower(fieldName), keepDups: true}
	w.walk(root)
	return w.values
}

// ExtractExactFieldOccurrences combines both variants: exact key matching
// without deduplication.
func ExtractExactFieldOccurrences(root Node, fieldName string) []string {
	w := &walker{target: strings.ToLower(fieldName), exact: true, keepDups: true}
	w.walk(root)
	return w.values
}

func extract(root Node, target string, exact bool) []string {
	w := &walker{target: target, exact: exact, seen: map[string]struct{}{}}
	w.walk(root)
	return w.values
}

type walker struct {
	target   string
	exact    bool
	keepDups bool
	seen     map[string]struct{}
	values   []string
}

func (w *walker) walk(n Node) {
	switch node := n.(type) {
	case Mapping:
		for key, value := range node {
			clean := cleanKey(key)
			if w.matches(clean) {
				w.collect(clean, value)
			}
			// Matching a container key does not preclude deeper matches;
			// non-matching values are searched unconditionally.
			w.walk(value)
		}
	case Sequence:
		for _, el := range node {
			w.walk(el)
		}
	}
	// Scalars outside a matched key carry no field identity; ignore.
}

func (w *walker) matches(cleanKey string) bool {
	if w.exact {
		return cleanKey == w.target
	}
	return strings.Contains(cleanKey, w.target)
}

// collect normalizes the value under a matched key.
func (w *walker) collect(cleanKey string, n Node) {
	switch node := n.(type) {
	case Scalar:
		w.add(normalizeScalar(cleanKey, node))
	case Sequence:
		for _, el := range node {
			w.collect(cleanKey, el)
		}
	case Mapping:
		// Unwrap the element's text content when present; the structural
		// children are still visited by the surrounding walk.
		if text, ok := node[TextKey].(Scalar); ok {
			w.add(normalizeScalar(cleanKey, text))
		}
	}
}

func (w *walker) add(v string) {
	if v == "" {
		return
	}
	if w.keepDups {
		w.values = append(w.values, v)
		return
	}
	if _, dup := w.seen[v]; dup {
		return
	}
	w.seen[v] = struct{}{}
	w.values = append(w.values, v)
}

// normalizeScalar renders a matched scalar, restoring leading zeros for
// identifier-like keys whose numeric coercion dropped them.
func normalizeScalar(cleanKey string, s Scalar) string {
	text := strings.TrimSpace(s.Text())
	if s.Kind != KindNumber {
		return text
	}
	for _, p := range padWidths {
		if strings.Contains(cleanKey, p.substr) {
			return zeroPad(text, p.width)
		}
	}
	return text
}

func zeroPad(s string, width int) string {
	for len(s) < width {
		s = "0" + s
	}
	return s
}

// cleanKey strips any namespace prefix and lower-cases the key for
// comparison.
func cleanKey(key string) string {
	if i := strings.IndexByte(key, ':'); i >= 0 {
		key = key[i+1:]
	}
	return strings.ToLower(key)
}
