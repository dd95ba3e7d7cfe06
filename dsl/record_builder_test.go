package dsl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	normalizr "github.com/reoring/normalizr"
	g "github.com/reoring/normalizr/dsl"
)

func TestRecord_BuildAndNormalize(t *testing.T) {
	user := g.Record("user").
		Field("name", g.Scalar()).
		Field("role", g.Scalar()).Default("member").
		MustBuild()
	article := g.Record("article").
		Field("author", user).
		Field("tags", g.Array(g.Scalar())).
		MustBuild()

	out, err := normalizr.Normalize(map[string]any{
		"id":     "a1",
		"author": map[string]any{"id": "u1", "name": "Paul"},
		"tags":   []any{"go"},
	}, article)
	require.NoError(t, err)

	assert.Equal(t, "a1", out.Result)
	assert.Equal(t, normalizr.Entity{"id": "u1", "name": "Paul", "role": "member"}, out.Entities["user"]["u1"])
	assert.Equal(t, "u1", out.Entities["article"]["a1"]["author"])
}

func TestRecord_CustomID(t *testing.T) {
	r := g.Record("sku").ID("code").Field("price", g.Scalar()).MustBuild()
	assert.Equal(t, "code", normalizr.IdentifierFieldName(r))

	out, err := normalizr.Normalize(map[string]any{"code": "X-1", "price": 3}, r)
	require.NoError(t, err)
	assert.Equal(t, "X-1", out.Result)
}

func TestRecord_OptionalWrapsField(t *testing.T) {
	r := g.Record("p").Field("note", g.Scalar()).Optional().MustBuild()
	require.Len(t, r.Fields, 1)
	assert.Equal(t, normalizr.KindOptional, normalizr.KindOf(r.Fields[0].Schema))
}

func TestRecord_SelfReference(t *testing.T) {
	b := g.Record("comment")
	b.Field("replies", g.Array(b.Self()))
	comment := b.MustBuild()

	reply := map[string]any{"id": "c2", "text": "me too"}
	out, err := normalizr.Normalize(map[string]any{
		"id":      "c1",
		"replies": []any{reply},
	}, comment)
	require.NoError(t, err)

	assert.Equal(t, []any{"c2"}, out.Entities["comment"]["c1"]["replies"])
	assert.Equal(t, []any{}, out.Entities["comment"]["c2"]["replies"])
}

func TestRecord_BuildErrors(t *testing.T) {
	_, err := g.Record("x").Field("a", g.Scalar()).Field("a", g.Scalar()).Build()
	require.Error(t, err)
	assert.ErrorIs(t, err, normalizr.ErrInvalidSchemaKind)

	_, err = g.Record("x").Field("", g.Scalar()).Build()
	require.Error(t, err)

	_, err = g.Record("x").Field("a", nil).Build()
	require.Error(t, err)
	iss, ok := normalizr.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, "/fields/0", iss[0].Path)

	assert.Panics(t, func() { g.Record("x").Field("", nil).MustBuild() })
}

func TestRecord_BuildIsStable(t *testing.T) {
	b := g.Record("x").Field("a", g.Scalar())
	r1, err := b.Build()
	require.NoError(t, err)
	r2, err := b.Build()
	require.NoError(t, err)
	assert.Same(t, r1, r2)
}
