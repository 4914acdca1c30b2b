package guide

// Context is the read-only bundle handed to every validation rule. It is
// built once per document and never mutated during a validation pass; rules
// are read-only consumers.
type Context struct {
	// XMLContent is the BOM-stripped original document text.
	XMLContent string

	// Root is the parsed document tree.
	Root Node

	// GuiaType is the detected document classification.
	GuiaType GuiaType

	// Metadata holds optional pre-extracted values (operator registry,
	// guide numbers) for callers that want them without re-walking the tree.
	Metadata map[string]string
}

// NewContext parses and classifies a raw guide document.
func NewContext(xmlContent string) (*Context, error) {
	xmlContent = StripBOM(xmlContent)

	root, err := Parse(xmlContent)
	if err != nil {
		return nil, err
	}

	ctx := &Context{
		XMLContent: xmlContent,
		Root:       root,
		GuiaType:   DetectGuiaType(xmlContent),
		Metadata:   map[string]string{},
	}

	if v := ExtractFieldValues(root, "registroANS"); len(v) > 0 {
		ctx.Metadata["registroANS"] = v[0]
	}
	if v := ExtractFieldValues(root, "numeroGuia"); len(v) > 0 {
		ctx.Metadata["numeroGuia"] = v[0]
	}

	return ctx, nil
}
