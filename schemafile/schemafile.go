// Package schemafile compiles declarative YAML schema documents into
// normalizr schemas.
//
// A document declares named record types. Field order in the document is
// field order in the schema:
//
//	root: article
//	types:
//	  user:
//	    fields:
//	      name: scalar
//	  comment:
//	    fields:
//	      author: user
//	      replies: comment[]
//	  article:
//	    id: slug
//	    fields:
//	      author: "@user"
//	      comments: comment[]
//	      status: {optional: scalar, default: draft}
//	  page:
//	    entity: false
//	    fields:
//	      items: article[]
//
// Type expressions are either strings or single-key mappings:
//
//	scalar        leaf value
//	NAME          nested record NAME
//	@NAME         reference to record NAME (raw identifiers are kept)
//	EXPR[]        array of EXPR
//	EXPR?         optional EXPR
//	{array: EXPR}
//	{optional: EXPR, default: VALUE}
//	{ref: NAME}
//	{union: {discriminator: KEY, variants: {TAG: EXPR}, alternatives: [EXPR]}}
//	{record: {fields: ...}}   anonymous structural record
//
// Type names may be used before they are declared and may refer to each
// other cyclically.
package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	normalizr "github.com/reoring/normalizr"
	"github.com/reoring/normalizr/source"
)

// Set is a compiled schema document.
type Set struct {
	types map[string]*normalizr.Record
	order []string
	root  string
}

// Type returns the record declared under name.
func (s *Set) Type(name string) (*normalizr.Record, bool) {
	r, ok := s.types[name]
	return r, ok
}

// Names lists declared type names in document order.
func (s *Set) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Root returns the record named by the document's root key.
func (s *Set) Root() (*normalizr.Record, bool) {
	if s.root == "" {
		return nil, false
	}
	return s.Type(s.root)
}

// Load reads and compiles a schema document from r.
func Load(r io.Reader) (*Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("schemafile: read: %w", err)
	}
	return Parse(data)
}

// Parse compiles a schema document. Only the first YAML document is used.
func Parse(data []byte) (*Set, error) {
	var doc yaml.Node
	dec := yaml.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, normalizr.Issues{normalizr.RootPath().Issue(normalizr.CodeInvalidSchemaKind, "empty schema document")}
		}
		return nil, fmt.Errorf("schemafile: %w", err)
	}
	c := &compiler{set: &Set{types: map[string]*normalizr.Record{}}}
	c.document(&doc)
	if len(c.iss) > 0 {
		return nil, c.iss
	}
	return c.set, nil
}

type compiler struct {
	set *Set
	iss normalizr.Issues
}

func (c *compiler) fail(p normalizr.PathRef, n *yaml.Node, hint string) {
	it := p.Issue(normalizr.CodeInvalidSchemaKind, hint)
	if n != nil {
		it.Params["line"] = n.Line
		it.Params["column"] = n.Column
	}
	c.iss = normalizr.AppendIssues(c.iss, it)
}

func (c *compiler) document(doc *yaml.Node) {
	root := normalizr.RootPath()
	top := doc
	if top.Kind == yaml.DocumentNode && len(top.Content) > 0 {
		top = top.Content[0]
	}
	if top.Kind != yaml.MappingNode {
		c.fail(root, top, "schema document must be a mapping")
		return
	}
	var typesNode *yaml.Node
	for i := 0; i+1 < len(top.Content); i += 2 {
		k, v := top.Content[i], top.Content[i+1]
		switch k.Value {
		case "types":
			typesNode = v
		case "root":
			c.set.root = v.Value
		default:
			c.fail(root.Field(k.Value), k, "unknown key")
		}
	}
	if typesNode == nil || typesNode.Kind != yaml.MappingNode {
		c.fail(root.Field("types"), typesNode, "types must be a mapping of type names")
		return
	}

	// Declare every record first so type expressions may refer forward or
	// cyclically.
	bodies := make(map[string]*yaml.Node, len(typesNode.Content)/2)
	for i := 0; i+1 < len(typesNode.Content); i += 2 {
		name, body := typesNode.Content[i].Value, typesNode.Content[i+1]
		if _, dup := c.set.types[name]; dup {
			c.fail(root.Field("types").Field(name), typesNode.Content[i], "duplicate type")
			continue
		}
		c.set.types[name] = &normalizr.Record{Name: name}
		c.set.order = append(c.set.order, name)
		bodies[name] = body
	}
	for _, name := range c.set.order {
		c.record(root.Field("types").Field(name), bodies[name], c.set.types[name])
	}
	if c.set.root != "" {
		if _, ok := c.set.types[c.set.root]; !ok {
			c.fail(root.Field("root"), nil, "root names an undeclared type '"+c.set.root+"'")
		}
	}
}

// record fills r from a record body mapping.
func (c *compiler) record(p normalizr.PathRef, body *yaml.Node, r *normalizr.Record) {
	if body.Kind != yaml.MappingNode {
		c.fail(p, body, "record body must be a mapping")
		return
	}
	for i := 0; i+1 < len(body.Content); i += 2 {
		k, v := body.Content[i], body.Content[i+1]
		switch k.Value {
		case "id":
			r.IDAttribute = v.Value
		case "name":
			r.Name = v.Value
		case "entity":
			var entity bool
			if err := v.Decode(&entity); err != nil {
				c.fail(p.Field("entity"), v, "entity must be a boolean")
				continue
			}
			if !entity {
				r.Name = ""
			}
		case "fields":
			c.fields(p.Field("fields"), v, r)
		default:
			c.fail(p.Field(k.Value), k, "unknown key")
		}
	}
}

func (c *compiler) fields(p normalizr.PathRef, n *yaml.Node, r *normalizr.Record) {
	if n.Kind != yaml.MappingNode {
		c.fail(p, n, "fields must be a mapping")
		return
	}
	seen := map[string]struct{}{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		name := n.Content[i].Value
		if _, dup := seen[name]; dup {
			c.fail(p.Field(name), n.Content[i], "duplicate field")
			continue
		}
		seen[name] = struct{}{}
		schema := c.expr(p.Field(name), n.Content[i+1])
		if schema == nil {
			continue
		}
		r.Fields = append(r.Fields, normalizr.Field{Name: name, Schema: schema})
	}
}

// expr compiles a type expression. It returns nil after recording an issue.
func (c *compiler) expr(p normalizr.PathRef, n *yaml.Node) normalizr.Node {
	switch n.Kind {
	case yaml.ScalarNode:
		return c.shorthand(p, n, n.Value)
	case yaml.MappingNode:
		return c.mapping(p, n)
	}
	c.fail(p, n, "type expression must be a string or a mapping")
	return nil
}

func (c *compiler) shorthand(p normalizr.PathRef, n *yaml.Node, s string) normalizr.Node {
	switch {
	case s == "":
		c.fail(p, n, "empty type expression")
		return nil
	case len(s) > 2 && s[len(s)-2:] == "[]":
		inner := c.shorthand(p, n, s[:len(s)-2])
		if inner == nil {
			return nil
		}
		return normalizr.ArrayOf(inner)
	case len(s) > 1 && s[len(s)-1] == '?':
		inner := c.shorthand(p, n, s[:len(s)-1])
		if inner == nil {
			return nil
		}
		return normalizr.Maybe(inner)
	case s[0] == '@':
		return c.ref(p, n, s[1:])
	case s == "scalar":
		return normalizr.Scalar()
	}
	r, ok := c.set.types[s]
	if !ok {
		c.fail(p, n, "unknown type '"+s+"'")
		return nil
	}
	return r
}

func (c *compiler) ref(p normalizr.PathRef, n *yaml.Node, name string) normalizr.Node {
	r, ok := c.set.types[name]
	if !ok {
		c.fail(p, n, "reference to unknown type '"+name+"'")
		return nil
	}
	return normalizr.RefTo(r)
}

func (c *compiler) mapping(p normalizr.PathRef, n *yaml.Node) normalizr.Node {
	keys := map[string]*yaml.Node{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		keys[n.Content[i].Value] = n.Content[i+1]
	}
	switch {
	case keys["array"] != nil:
		inner := c.expr(p.Field("array"), keys["array"])
		if inner == nil {
			return nil
		}
		return normalizr.ArrayOf(inner)
	case keys["optional"] != nil:
		inner := c.expr(p.Field("optional"), keys["optional"])
		if inner == nil {
			return nil
		}
		dn, ok := keys["default"]
		if !ok {
			return normalizr.Maybe(inner)
		}
		var def any
		if err := dn.Decode(&def); err != nil {
			c.fail(p.Field("default"), dn, err.Error())
			return nil
		}
		def = source.Plain(def)
		return &normalizr.Optional{Of: inner, Default: func() any { return deepCopy(def) }}
	case keys["ref"] != nil:
		return c.ref(p.Field("ref"), keys["ref"], keys["ref"].Value)
	case keys["union"] != nil:
		return c.union(p.Field("union"), keys["union"])
	case keys["record"] != nil:
		r := &normalizr.Record{}
		c.record(p.Field("record"), keys["record"], r)
		return r
	}
	c.fail(p, n, "mapping must have one of array, optional, ref, union, record")
	return nil
}

func (c *compiler) union(p normalizr.PathRef, n *yaml.Node) normalizr.Node {
	if n.Kind != yaml.MappingNode {
		c.fail(p, n, "union must be a mapping")
		return nil
	}
	var (
		discriminator string
		alts          []normalizr.Node
		mapping       = map[string]normalizr.Node{}
	)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		switch k.Value {
		case "discriminator":
			discriminator = v.Value
		case "variants":
			if v.Kind != yaml.MappingNode {
				c.fail(p.Field("variants"), v, "variants must be a mapping")
				continue
			}
			for j := 0; j+1 < len(v.Content); j += 2 {
				tag := v.Content[j].Value
				alt := c.expr(p.Field("variants").Field(tag), v.Content[j+1])
				if alt == nil {
					continue
				}
				mapping[tag] = alt
				alts = append(alts, alt)
			}
		case "alternatives":
			if v.Kind != yaml.SequenceNode {
				c.fail(p.Field("alternatives"), v, "alternatives must be a list")
				continue
			}
			for j, item := range v.Content {
				if alt := c.expr(p.Field("alternatives").Index(j), item); alt != nil {
					alts = append(alts, alt)
				}
			}
		default:
			c.fail(p.Field(k.Value), k, "unknown key")
		}
	}
	if len(alts) == 0 {
		c.fail(p, n, "union has no alternatives")
		return nil
	}
	if len(mapping) > 0 && discriminator == "" {
		c.fail(p, n, "variants need a discriminator")
		return nil
	}
	u := &normalizr.Union{Alternatives: alts}
	if discriminator != "" {
		u.Pick = normalizr.PickByDiscriminator(discriminator, mapping)
	}
	return u
}

// deepCopy gives each defaulted field its own copy of a composite default.
func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = deepCopy(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = deepCopy(t[i])
		}
		return out
	default:
		return v
	}
}
