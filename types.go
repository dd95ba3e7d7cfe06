package normalizr

// Entity is a flattened record: field name to normalized value.
type Entity map[string]any

// Entities maps an entity type name to identifier keys to entities.
type Entities map[string]map[string]Entity

// Get returns the entity stored under typeName and key.
func (e Entities) Get(typeName, key string) (Entity, bool) {
	bucket, ok := e[typeName]
	if !ok {
		return nil, false
	}
	ent, ok := bucket[key]
	return ent, ok
}

// Normalized is the outcome of a Normalize call. Result is the root
// identifier for object input (nil when absent) or a []any parallel to the
// input for sequence input.
type Normalized struct {
	Result   any      `json:"result,omitempty" yaml:"result,omitempty"`
	Entities Entities `json:"entities" yaml:"entities"`
}

// UnknownPolicy controls what happens to input fields a Record does not
// declare.
type UnknownPolicy int

const (
	UnknownPassthrough UnknownPolicy = iota // Copy undeclared fields into the entity unchanged.
	UnknownStrip                            // Keep only declared fields and the identifier.
)

// Options bundles per-call settings.
type Options struct {
	Unknown UnknownPolicy
	// MaxEntities bounds the number of records flattened in one call
	// (0 = unlimited).
	MaxEntities int
	// StrictUnions fails the call when a union value matches no alternative
	// and the union has no Reference alternative. When false the raw value
	// is kept.
	StrictUnions bool
	// MaxDepth bounds how deeply one field value is resolved through nested
	// collections and schema wrappers (0 = unlimited). Records are flattened
	// from the work-list and start again at depth 0.
	MaxDepth int
}

// DefaultMaxDepth is the MaxDepth used when no option overrides it.
const DefaultMaxDepth = 10000

// Option mutates Options.
type Option func(*Options)

func defaultOptions() Options {
	return Options{Unknown: UnknownPassthrough, StrictUnions: true, MaxDepth: DefaultMaxDepth}
}

func WithUnknown(p UnknownPolicy) Option { return func(o *Options) { o.Unknown = p } }

func WithMaxEntities(n int) Option { return func(o *Options) { o.MaxEntities = n } }

func WithStrictUnions(strict bool) Option { return func(o *Options) { o.StrictUnions = strict } }

// WithMaxDepth sets Options.MaxDepth; n <= 0 disables the check.
func WithMaxDepth(n int) Option {
	return func(o *Options) {
		if n < 0 {
			n = 0
		}
		o.MaxDepth = n
	}
}

func buildOptions(opts []Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
