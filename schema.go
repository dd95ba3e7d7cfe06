package normalizr

// Kind identifies a schema node variant.
type Kind int

const (
	KindScalar Kind = iota
	KindRecord
	KindCollection
	KindOptional
	KindUnion
	KindReference
	KindLazy
)

func (k Kind) String() string {
	switch k {
	case KindRecord:
		return "record"
	case KindCollection:
		return "collection"
	case KindOptional:
		return "optional"
	case KindUnion:
		return "union"
	case KindReference:
		return "reference"
	case KindLazy:
		return "lazy"
	default:
		return "scalar"
	}
}

// Node is a schema node. The set of implementations is closed: the concrete
// kinds are *Record, *Collection, *Optional, *Union, *Reference, *Lazy and
// *ScalarNode.
type Node interface {
	Kind() Kind
	node()
}

// DefaultIDAttribute is the identifier field used when a Record does not
// declare one.
const DefaultIDAttribute = "id"

// Field is a declared Record field.
type Field struct {
	Name   string
	Schema Node
}

// Record describes an object type. A Record with an empty Name is a
// structural wrapper: its nested entities are flattened but it never gets a
// bucket of its own.
type Record struct {
	Name        string
	IDAttribute string // empty means DefaultIDAttribute
	Fields      []Field
}

func (*Record) Kind() Kind { return KindRecord }
func (*Record) node()      {}

// Collection is an ordered sequence of Of.
type Collection struct {
	Of Node
}

func (*Collection) Kind() Kind { return KindCollection }
func (*Collection) node()      {}

// Optional wraps a node that may be missing from the input. Default, when
// set, provides the value substituted for a missing input.
type Optional struct {
	Of      Node
	Default func() any
}

func (*Optional) Kind() Kind { return KindOptional }
func (*Optional) node()      {}

// Union is a choice among Alternatives. Pick returns the alternative matching
// a value, or nil when none does.
type Union struct {
	Alternatives []Node
	Pick         func(v any) Node
}

func (*Union) Kind() Kind { return KindUnion }
func (*Union) node()      {}

// Reference points at a Record stored in its own entity bucket.
type Reference struct {
	To *Record
}

func (*Reference) Kind() Kind { return KindReference }
func (*Reference) node()      {}

// Lazy defers resolution of its target until traversal. It is how
// self-referential schemas are written.
type Lazy struct {
	Resolve func() Node
}

func (*Lazy) Kind() Kind { return KindLazy }
func (*Lazy) node()      {}

// ScalarNode is a leaf. Values under it are copied unchanged.
type ScalarNode struct{}

func (*ScalarNode) Kind() Kind { return KindScalar }
func (*ScalarNode) node()      {}

var scalar = &ScalarNode{}

// Scalar returns the shared leaf node.
func Scalar() Node { return scalar }

// NewRecord builds a named Record from ordered fields.
func NewRecord(name string, fields ...Field) *Record {
	return &Record{Name: name, Fields: fields}
}

// F is shorthand for a Field literal.
func F(name string, schema Node) Field { return Field{Name: name, Schema: schema} }

// ArrayOf wraps n in a Collection.
func ArrayOf(n Node) *Collection { return &Collection{Of: n} }

// Maybe wraps n in an Optional without a default.
func Maybe(n Node) *Optional { return &Optional{Of: n} }

// MaybeOr wraps n in an Optional whose missing values become def.
func MaybeOr(n Node, def any) *Optional {
	return &Optional{Of: n, Default: func() any { return def }}
}

// RefTo returns a Reference to r.
func RefTo(r *Record) *Reference { return &Reference{To: r} }

// Defer returns a Lazy node resolved through fn.
func Defer(fn func() Node) *Lazy { return &Lazy{Resolve: fn} }

// OneOf builds a Union with the given picker.
func OneOf(pick func(v any) Node, alts ...Node) *Union {
	return &Union{Alternatives: alts, Pick: pick}
}

// PickByDiscriminator returns a picker that reads a string tag from a plain
// object and looks it up in mapping. Non-objects and unknown tags yield nil.
func PickByDiscriminator(field string, mapping map[string]Node) func(any) Node {
	return func(v any) Node {
		m, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		tag, _ := m[field].(string)
		if tag == "" {
			return nil
		}
		return mapping[tag]
	}
}
