package normalizr

// ValidateInput checks that input is a plain object (map[string]any).
func ValidateInput(input any) error {
	return validateInputAt(RootPath(), input)
}

func validateInputAt(p PathRef, input any) error {
	switch classifyInput(input) {
	case inputPlainObject:
		return nil
	case inputObject:
		return Issues{p.Issue(CodeNotAPlainObject, "got "+typeName(input), "type", typeName(input))}
	default:
		return Issues{p.Issue(CodeNotAnObject, "got "+typeName(input), "type", typeName(input))}
	}
}

// ValidateSchema checks that schema is, or lazily resolves to, a Record.
func ValidateSchema(schema Node) error {
	_, err := recordSchema(schema)
	return err
}

// recordSchema resolves schema through Lazy hops and returns its Record.
func recordSchema(schema Node) (*Record, error) {
	n, ok := resolveLazy(schema)
	if !ok {
		return nil, Issues{RootPath().Issue(CodeCyclicSchema, "")}
	}
	r, ok := n.(*Record)
	if !ok || r == nil {
		return nil, Issues{RootPath().Issue(CodeNotARecordSchema, "got "+KindOf(n).String(), "kind", KindOf(n).String())}
	}
	return r, nil
}
