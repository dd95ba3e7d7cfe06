package normalizr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	normalizr "github.com/reoring/normalizr"
)

func TestUpsert_LaterWinsAndKeepsEarlierFields(t *testing.T) {
	ents := normalizr.Entities{}

	normalizr.Upsert(ents, "user", "1", normalizr.Entity{"id": "1", "name": "a", "bio": "x"})
	got := normalizr.Upsert(ents, "user", "1", normalizr.Entity{"id": "1", "name": "b"})

	assert.Equal(t, normalizr.Entity{"id": "1", "name": "b", "bio": "x"}, got)
	stored, ok := ents.Get("user", "1")
	assert.True(t, ok)
	assert.Equal(t, got, stored)
}

func TestUpsert_DoesNotAliasCallerRecord(t *testing.T) {
	ents := normalizr.Entities{}
	rec := normalizr.Entity{"id": "1"}
	normalizr.Upsert(ents, "user", "1", rec)
	rec["name"] = "late"

	stored, _ := ents.Get("user", "1")
	assert.NotContains(t, stored, "name")
}

func TestMergeEntities(t *testing.T) {
	dst := normalizr.Entities{"user": {"1": {"id": "1", "name": "a"}}}
	src := normalizr.Entities{
		"user":    {"1": {"name": "b"}, "2": {"id": "2"}},
		"comment": {"c": {"id": "c"}},
	}

	normalizr.MergeEntities(dst, src)

	assert.Equal(t, normalizr.Entities{
		"user":    {"1": {"id": "1", "name": "b"}, "2": {"id": "2"}},
		"comment": {"c": {"id": "c"}},
	}, dst)
	_, ok := dst.Get("post", "1")
	assert.False(t, ok)
}
