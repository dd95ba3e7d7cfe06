package normalizr

// maxIndirections bounds how many Lazy hops are followed before a chain is
// reported as cyclic.
const maxIndirections = 64

// KindOf reports the kind of n. A nil node is a scalar.
func KindOf(n Node) Kind {
	if n == nil {
		return KindScalar
	}
	return n.Kind()
}

// ForEachField calls visit for every declared field of r in declaration order.
func ForEachField(r *Record, visit func(name string, schema Node)) {
	if r == nil {
		return
	}
	for _, f := range r.Fields {
		visit(f.Name, f.Schema)
	}
}

// IdentifierFieldName returns the field holding r's identifier.
func IdentifierFieldName(r *Record) string {
	if r == nil || r.IDAttribute == "" {
		return DefaultIDAttribute
	}
	return r.IDAttribute
}

// NameOf returns r's declared type name, if any.
func NameOf(r *Record) (string, bool) {
	if r == nil || r.Name == "" {
		return "", false
	}
	return r.Name, true
}

func ElementSchema(c *Collection) Node {
	if c == nil {
		return nil
	}
	return c.Of
}

func WrappedSchema(o *Optional) Node {
	if o == nil {
		return nil
	}
	return o.Of
}

// DefaultValue returns o's default, or nil when none is declared.
func DefaultValue(o *Optional) any {
	if o == nil || o.Default == nil {
		return nil
	}
	return o.Default()
}

func Alternatives(u *Union) []Node {
	if u == nil {
		return nil
	}
	return u.Alternatives
}

// PickAlternative asks u which alternative matches v. It returns nil when u
// has no picker or the picker finds nothing.
func PickAlternative(u *Union, v any) Node {
	if u == nil || u.Pick == nil {
		return nil
	}
	return u.Pick(v)
}

// Target returns the Record a Reference points at.
func Target(r *Reference) *Record {
	if r == nil {
		return nil
	}
	return r.To
}

// ResolveIndirection follows one Lazy hop.
func ResolveIndirection(l *Lazy) Node {
	if l == nil || l.Resolve == nil {
		return nil
	}
	return l.Resolve()
}

// resolveLazy follows Lazy hops until a concrete node is reached. A chain
// longer than maxIndirections is reported as cyclic.
func resolveLazy(n Node) (Node, bool) {
	for i := 0; i < maxIndirections; i++ {
		l, ok := n.(*Lazy)
		if !ok {
			return n, true
		}
		n = ResolveIndirection(l)
	}
	if _, ok := n.(*Lazy); ok {
		return nil, false
	}
	return n, true
}

// firstReference returns the first Reference among alts, looking through
// Lazy alternatives.
func firstReference(alts []Node) *Reference {
	for _, a := range alts {
		r, ok := resolveLazy(a)
		if !ok {
			continue
		}
		if ref, ok := r.(*Reference); ok {
			return ref
		}
	}
	return nil
}
