package normalizr

// fieldState says where a resolved field value came from.
type fieldState int

const (
	fieldAbsent fieldState = iota // no value; the key is left out of the entity
	fieldRead                     // derived from the input value
	fieldFilled                   // synthesized for a missing or null value (default, empty collection)
)

// resolve computes the normalized value of one field. present is false when
// the field is missing from the input. Wrappers are unwrapped outermost
// first; depth counts nested resolve frames below the record field.
func (n *normalizer) resolve(raw any, present bool, schema Node, p PathRef, depth int) (any, fieldState, error) {
	if n.opt.MaxDepth > 0 && depth > n.opt.MaxDepth {
		return nil, fieldAbsent, Issues{p.Issue(CodeTooDeep, "", "max", n.opt.MaxDepth)}
	}
	switch s := schema.(type) {
	case *Lazy:
		target, ok := resolveLazy(s)
		if !ok {
			return nil, fieldAbsent, Issues{p.Issue(CodeCyclicSchema, "")}
		}
		return n.resolve(raw, present, target, p, depth+1)

	case *Record:
		m, ok := raw.(map[string]any)
		if !ok || m == nil {
			return nil, fieldAbsent, nil
		}
		if id, ok := n.enqueue(m, s, p); ok {
			return id, fieldRead, nil
		}
		return nil, fieldAbsent, nil

	case *Union:
		if !present || raw == nil {
			return nil, fieldAbsent, nil
		}
		alt := PickAlternative(s, raw)
		if alt == nil {
			if ref := firstReference(Alternatives(s)); ref != nil {
				alt = ref
			}
		}
		if alt == nil {
			if n.opt.StrictUnions {
				return nil, fieldAbsent, Issues{p.Issue(CodeUnionUnresolved, "got "+typeName(raw), "alternatives", len(Alternatives(s)))}
			}
			return raw, fieldRead, nil
		}
		return n.resolve(raw, present, alt, p, depth+1)

	case *Optional:
		if (!present || raw == nil) && s != nil && s.Default != nil {
			v, st, err := n.resolve(DefaultValue(s), true, WrappedSchema(s), p, depth+1)
			if st == fieldRead {
				st = fieldFilled
			}
			return v, st, err
		}
		return n.resolve(raw, present, WrappedSchema(s), p, depth+1)

	case *Collection:
		if !present || raw == nil {
			return []any{}, fieldFilled, nil
		}
		if classifyInput(raw) != inputSequence {
			return nil, fieldAbsent, nil
		}
		items := sequenceItems(raw)
		out := make([]any, len(items))
		for i, item := range items {
			v, _, err := n.resolve(item, true, ElementSchema(s), p.Index(i), depth+1)
			if err != nil {
				return nil, fieldAbsent, err
			}
			out[i] = v
		}
		return out, fieldRead, nil

	case *Reference:
		target := Target(s)
		if target == nil {
			return raw, readState(present), nil
		}
		if _, isObj := raw.(map[string]any); !isObj && isIdentifier(raw) {
			// already a foreign key
			return raw, fieldRead, nil
		}
		return n.resolve(raw, present, target, p, depth+1)
	}
	return raw, readState(present), nil
}

func readState(present bool) fieldState {
	if present {
		return fieldRead
	}
	return fieldAbsent
}
