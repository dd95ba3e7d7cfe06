package normalizr

// Normalize flattens input into entities described by schema.
//
// For a plain object input, schema must be (or lazily resolve to) a Record;
// Result is the root identifier, or nil when the Record is unnamed or the
// input carries no identifier. For a sequence input, schema must be a
// Collection of a Record; Result is a []any of per-element identifiers in
// input order.
//
// Validation runs before any traversal, so a rejected call returns no
// partial entities. The input is never mutated.
func Normalize(input any, schema Node, opts ...Option) (*Normalized, error) {
	opt := buildOptions(opts)
	switch classifyInput(input) {
	case inputPlainObject, inputObject:
		return normalizeObject(input, schema, opt)
	case inputSequence:
		c, ok := schema.(*Collection)
		if !ok || c == nil {
			return nil, Issues{RootPath().Issue(CodeInvalidSchemaKind, "sequence input needs a collection schema", "kind", KindOf(schema).String())}
		}
		r, err := recordSchema(ElementSchema(c))
		if err != nil {
			return nil, Issues{RootPath().Issue(CodeInvalidSchemaKind, "collection element must be a record")}
		}
		return normalizeSequence(sequenceItems(input), r, opt)
	default:
		return nil, Issues{RootPath().Issue(CodeInvalidInputKind, "got "+typeName(input), "type", typeName(input))}
	}
}

// NormalizeAll flattens every element of inputs under the same Record and
// merges the results into one entity map.
func NormalizeAll(inputs []any, schema Node, opts ...Option) (*Normalized, error) {
	r, err := recordSchema(schema)
	if err != nil {
		return nil, err
	}
	return normalizeSequence(inputs, r, buildOptions(opts))
}

func normalizeObject(input any, schema Node, opt Options) (*Normalized, error) {
	if err := ValidateInput(input); err != nil {
		return nil, err
	}
	r, err := recordSchema(schema)
	if err != nil {
		return nil, err
	}
	n := newNormalizer(opt)
	id, ok, err := n.flattenRoot(input.(map[string]any), r, RootPath())
	if err != nil {
		return nil, err
	}
	out := &Normalized{Entities: n.entities}
	if ok {
		out.Result = id
	}
	return out, nil
}

func normalizeSequence(inputs []any, r *Record, opt Options) (*Normalized, error) {
	root := RootPath()
	var iss Issues
	for i, in := range inputs {
		if err := validateInputAt(root.Index(i), in); err != nil {
			child, _ := AsIssues(err)
			iss = AppendIssues(iss, child...)
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}

	// One normalizer for the whole sequence: entities merge across elements
	// and an object shared between elements is flattened once.
	n := newNormalizer(opt)
	results := make([]any, len(inputs))
	for i, in := range inputs {
		id, ok, err := n.flattenRoot(in.(map[string]any), r, root.Index(i))
		if err != nil {
			return nil, err
		}
		if ok {
			results[i] = id
		}
	}
	return &Normalized{Result: results, Entities: n.entities}, nil
}
