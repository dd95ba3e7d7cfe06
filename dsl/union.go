package dsl

import (
	normalizr "github.com/reoring/normalizr"
)

type unionBuilder struct {
	discriminator string
	tags          []string
	variants      map[string]normalizr.Node
	alts          []normalizr.Node
	pick          func(any) normalizr.Node
}

// Union creates a union builder.
func Union() *unionBuilder {
	return &unionBuilder{variants: map[string]normalizr.Node{}}
}

// Discriminator selects variants by the string value of key in the input
// object.
func (u *unionBuilder) Discriminator(key string) *unionBuilder {
	u.discriminator = key
	return u
}

// Variant registers an alternative selected by tag.
func (u *unionBuilder) Variant(tag string, n normalizr.Node) *unionBuilder {
	if _, exists := u.variants[tag]; !exists {
		u.tags = append(u.tags, tag)
	}
	u.variants[tag] = n
	return u
}

// Alternative registers an untagged alternative. Untagged Reference
// alternatives serve as the fallback when nothing matches.
func (u *unionBuilder) Alternative(n normalizr.Node) *unionBuilder {
	u.alts = append(u.alts, n)
	return u
}

// Pick sets a custom picker, replacing the discriminator.
func (u *unionBuilder) Pick(fn func(any) normalizr.Node) *unionBuilder {
	u.pick = fn
	return u
}

// Build validates the builder and returns the Union node.
func (u *unionBuilder) Build() (*normalizr.Union, error) {
	root := normalizr.RootPath()
	alts := make([]normalizr.Node, 0, len(u.tags)+len(u.alts))
	for _, tag := range u.tags {
		n := u.variants[tag]
		if tag == "" || n == nil {
			return nil, normalizr.Issues{root.Field("variants").Field(tag).Issue(normalizr.CodeInvalidSchemaKind, "variant needs a tag and a schema")}
		}
		alts = append(alts, n)
	}
	for i, n := range u.alts {
		if n == nil {
			return nil, normalizr.Issues{root.Field("alternatives").Index(i).Issue(normalizr.CodeInvalidSchemaKind, "nil alternative")}
		}
		alts = append(alts, n)
	}
	if len(alts) == 0 {
		return nil, normalizr.Issues{root.Issue(normalizr.CodeInvalidSchemaKind, "union has no alternatives")}
	}

	pick := u.pick
	if pick == nil {
		if u.discriminator == "" && len(u.tags) > 0 {
			return nil, normalizr.Issues{root.Issue(normalizr.CodeInvalidSchemaKind, "tagged variants need a discriminator")}
		}
		if u.discriminator != "" {
			mapping := make(map[string]normalizr.Node, len(u.variants))
			for k, v := range u.variants {
				mapping[k] = v
			}
			pick = normalizr.PickByDiscriminator(u.discriminator, mapping)
		}
	}
	return &normalizr.Union{Alternatives: alts, Pick: pick}, nil
}

// MustBuild is like Build but panics on error.
func (u *unionBuilder) MustBuild() *normalizr.Union {
	n, err := u.Build()
	if err != nil {
		panic(err)
	}
	return n
}
