package guide

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse parses guide XML into a node tree. The returned Mapping has a single
// entry keyed by the root element name (prefix preserved).
//
// Parsing guarantees relied on by the rest of the system:
//   - a UTF-8 byte-order mark is stripped before parsing
//   - repeated sibling elements become a Sequence, singletons a Mapping entry
//   - an element with only character data becomes a Scalar; with attributes
//     or children its text moves under the reserved "#text" key
//   - character data that looks numeric is coerced to a numeric Scalar,
//     which loses leading zeros (the extractor compensates for identifier
//     fields)
func Parse(content string) (Mapping, error) {
	content = StripBOM(content)
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("empty document")
	}

	dec := xml.NewDecoder(strings.NewReader(content))
	p := &parser{prefixes: map[string]string{}}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil, fmt.Errorf("no root element found")
		}
		if err != nil {
			return nil, fmt.Errorf("malformed XML: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		node, err := p.element(dec, start)
		if err != nil {
			return nil, err
		}
		return Mapping{p.key(start.Name): node}, nil
	}
}

// StripBOM removes a leading UTF-8 byte-order mark.
func StripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}

type parser struct {
	// prefixes maps namespace URIs back to their declared prefixes so tree
	// keys keep the source spelling (e.g. "ans:guiaConsulta").
	prefixes map[string]string
}

// element consumes tokens until the matching end element and builds a node.
func (p *parser) element(dec *xml.Decoder, start xml.StartElement) (Node, error) {
	attrs := Mapping{}
	for _, a := range start.Attr {
		if a.Name.Space == "xmlns" {
			p.prefixes[a.Value] = a.Name.Local
			continue
		}
		if a.Name.Local == "xmlns" && a.Name.Space == "" {
			continue
		}
		attrs["@"+p.key(a.Name)] = coerceScalar(a.Value)
	}

	var text strings.Builder
	children := Mapping{}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("malformed XML inside <%s>: %w", start.Name.Local, err)
		}

		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)

		case xml.StartElement:
			child, err := p.element(dec, t)
			if err != nil {
				return nil, err
			}
			key := p.key(t.Name)
			switch existing := children[key].(type) {
			case nil:
				children[key] = child
			case Sequence:
				children[key] = append(existing, child)
			default:
				children[key] = Sequence{existing, child}
			}

		case xml.EndElement:
			return assemble(attrs, children, strings.TrimSpace(text.String())), nil
		}
	}
}

// assemble combines an element's attributes, children, and text into a node.
func assemble(attrs, children Mapping, text string) Node {
	if len(attrs) == 0 && len(children) == 0 {
		return coerceScalar(text)
	}

	m := Mapping{}
	for k, v := range attrs {
		m[k] = v
	}
	for k, v := range children {
		m[k] = v
	}
	if text != "" {
		m[TextKey] = coerceScalar(text)
	}
	return m
}

// key renders an element or attribute name with its source prefix.
func (p *parser) key(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	if prefix, ok := p.prefixes[name.Space]; ok {
		return prefix + ":" + name.Local
	}
	// Undeclared prefix: encoding/xml leaves the raw prefix in Space.
	return name.Space + ":" + name.Local
}

// coerceScalar converts character data to the most specific scalar kind.
// Mirrors the upstream parser behavior the extractor's zero-padding exists
// to compensate for.
func coerceScalar(text string) Scalar {
	text = strings.TrimSpace(text)

	if isNumeric(text) {
		if f, err := strconv.ParseFloat(text, 64); err == nil {
			return Number(f)
		}
	}
	switch text {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	return String(text)
}

// isNumeric reports whether s is a plain decimal number. Dates, times, and
// formatted identifiers contain separators and stay strings.
func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	dot := false
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r == '-' && i == 0 && len(s) > 1:
		case r == '.' && !dot && i > 0 && i < len(s)-1:
			dot = true
		default:
			return false
		}
	}
	return true
}
