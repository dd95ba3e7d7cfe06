package normalizr

import (
	"errors"

	"github.com/reoring/normalizr/internal/worklist"
)

// pending is a record waiting on the work-list.
type pending struct {
	schema *Record
	input  map[string]any
	path   PathRef
}

// normalizer holds the state of one Normalize call. It is never shared
// between calls.
type normalizer struct {
	opt      Options
	entities Entities
	visited  map[uintptr]struct{}
	stack    *worklist.Stack[pending]
	// batch collects the records discovered while flattening one record; it
	// is pushed in reverse so records are popped in document order.
	batch []pending
}

func newNormalizer(opt Options) *normalizer {
	return &normalizer{
		opt:      opt,
		entities: Entities{},
		visited:  map[uintptr]struct{}{},
		stack:    worklist.New[pending](opt.MaxEntities),
	}
}

// flattenRoot flattens input under r and everything reachable from it, and
// returns the root identifier.
func (n *normalizer) flattenRoot(input map[string]any, r *Record, p PathRef) (any, bool, error) {
	id, ok := n.enqueue(input, r, p)
	n.flush()
	if err := n.drain(); err != nil {
		return nil, false, err
	}
	return id, ok, nil
}

// enqueue schedules input for flattening under r and returns the value that
// stands for it at the reference site: its identifier when r is named and the
// identifier is usable.
func (n *normalizer) enqueue(input map[string]any, r *Record, p PathRef) (any, bool) {
	if _, seen := n.visited[identity(input)]; !seen {
		n.batch = append(n.batch, pending{schema: r, input: input, path: p})
	}
	return entityRef(input, r)
}

func (n *normalizer) flush() {
	for i := len(n.batch) - 1; i >= 0; i-- {
		n.stack.Push(n.batch[i])
	}
	clear(n.batch)
	n.batch = n.batch[:0]
}

func entityRef(input map[string]any, r *Record) (any, bool) {
	if _, named := NameOf(r); !named {
		return nil, false
	}
	id, ok := IdentifierOf(input, r)
	if !ok || !isIdentifier(id) {
		return nil, false
	}
	return id, true
}

// drain pops pending records until the work-list is empty. Records are
// flattened in document order, so a later sighting of an entity overwrites
// an earlier one. A record popped a second time (reachable through a cycle
// or a shared subtree) is skipped.
func (n *normalizer) drain() error {
	for {
		item, ok, err := n.stack.Pop()
		if err != nil {
			if errors.Is(err, worklist.ErrBudgetExceeded) {
				return Issues{item.path.Issue(CodeTooManyEntities, "", "max", n.opt.MaxEntities)}
			}
			return err
		}
		if !ok {
			return nil
		}
		key := identity(item.input)
		if _, seen := n.visited[key]; seen {
			continue
		}
		n.visited[key] = struct{}{}
		if err := n.flattenRecord(item); err != nil {
			return err
		}
		n.flush()
	}
}

// flattenRecord builds the entity for one record and upserts it.
func (n *normalizer) flattenRecord(item pending) error {
	r, input := item.schema, item.input
	idField := IdentifierFieldName(r)

	ent := Entity{}
	switch n.opt.Unknown {
	case UnknownStrip:
		if v, ok := input[idField]; ok {
			ent[idField] = v
		}
	default:
		for k, v := range input {
			ent[k] = v
		}
	}

	var iss Issues
	var filled map[string]struct{}
	ForEachField(r, func(name string, schema Node) {
		raw, present := input[name]
		v, st, err := n.resolve(raw, present, schema, item.path.Field(name), 0)
		if err != nil {
			if child, isIss := AsIssues(err); isIss {
				iss = AppendIssues(iss, child...)
			} else {
				iss = AppendIssues(iss, item.path.Field(name).Issue(CodeInvalidSchemaKind, err.Error()))
			}
			return
		}
		switch st {
		case fieldAbsent:
			delete(ent, name)
		case fieldFilled:
			if filled == nil {
				filled = map[string]struct{}{}
			}
			filled[name] = struct{}{}
			ent[name] = v
		default:
			ent[name] = v
		}
	})
	if len(iss) > 0 {
		return iss
	}

	typ, named := NameOf(r)
	if !named {
		return nil
	}
	id, ok := IdentifierOf(input, r)
	if !ok {
		return nil
	}
	key, ok := EntityKey(id)
	if !ok {
		return nil
	}
	upsert(n.entities, typ, key, ent, filled)
	return nil
}
