package dsl

import (
	normalizr "github.com/reoring/normalizr"
)

type recordBuilder struct {
	name   string
	idAttr string
	fields []normalizr.Field
	built  *normalizr.Record
}

type fieldStep struct {
	b   *recordBuilder
	idx int
}

// Record creates a builder for a named record. An empty name builds a
// structural record that never gets its own entity bucket.
func Record(name string) *recordBuilder {
	return &recordBuilder{name: name}
}

// ID overrides the identifier field (default "id").
func (b *recordBuilder) ID(attr string) *recordBuilder {
	b.idAttr = attr
	return b
}

// Field declares a field. Declaration order is traversal order.
func (b *recordBuilder) Field(name string, schema normalizr.Node) *fieldStep {
	b.fields = append(b.fields, normalizr.Field{Name: name, Schema: schema})
	return &fieldStep{b: b, idx: len(b.fields) - 1}
}

// Optional wraps the current field in an Optional without a default.
func (f *fieldStep) Optional() *recordBuilder {
	fd := &f.b.fields[f.idx]
	fd.Schema = normalizr.Maybe(fd.Schema)
	return f.b
}

// Default wraps the current field in an Optional whose missing values become v.
func (f *fieldStep) Default(v any) *recordBuilder {
	fd := &f.b.fields[f.idx]
	fd.Schema = normalizr.MaybeOr(fd.Schema, v)
	return f.b
}

func (f *fieldStep) Field(name string, schema normalizr.Node) *fieldStep {
	return f.b.Field(name, schema)
}
func (f *fieldStep) ID(attr string) *recordBuilder     { return f.b.ID(attr) }
func (f *fieldStep) Self() normalizr.Node              { return f.b.Self() }
func (f *fieldStep) Build() (*normalizr.Record, error) { return f.b.Build() }
func (f *fieldStep) MustBuild() *normalizr.Record      { return f.b.MustBuild() }

// Self returns a lazy node that resolves to the record this builder
// produces. It resolves to nil (a scalar) until Build succeeds.
func (b *recordBuilder) Self() normalizr.Node {
	return normalizr.Defer(func() normalizr.Node {
		if b.built == nil {
			return nil
		}
		return b.built
	})
}

// Build validates the declarations and returns the Record. Calling Build
// again returns the same Record.
func (b *recordBuilder) Build() (*normalizr.Record, error) {
	if b.built != nil {
		return b.built, nil
	}
	root := normalizr.RootPath()
	var iss normalizr.Issues
	seen := make(map[string]struct{}, len(b.fields))
	for i, f := range b.fields {
		p := root.Field("fields").Index(i)
		if f.Name == "" {
			iss = normalizr.AppendIssues(iss, p.Issue(normalizr.CodeInvalidSchemaKind, "field name is empty"))
			continue
		}
		if _, dup := seen[f.Name]; dup {
			iss = normalizr.AppendIssues(iss, p.Issue(normalizr.CodeInvalidSchemaKind, "duplicate field '"+f.Name+"'", "field", f.Name))
			continue
		}
		seen[f.Name] = struct{}{}
		if f.Schema == nil {
			iss = normalizr.AppendIssues(iss, p.Issue(normalizr.CodeInvalidSchemaKind, "field '"+f.Name+"' has no schema", "field", f.Name))
		}
	}
	if len(iss) > 0 {
		return nil, iss
	}
	fields := make([]normalizr.Field, len(b.fields))
	copy(fields, b.fields)
	b.built = &normalizr.Record{Name: b.name, IDAttribute: b.idAttr, Fields: fields}
	return b.built, nil
}

// MustBuild is like Build but panics on error.
func (b *recordBuilder) MustBuild() *normalizr.Record {
	r, err := b.Build()
	if err != nil {
		panic(err)
	}
	return r
}
