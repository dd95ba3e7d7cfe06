package source_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	normalizr "github.com/reoring/normalizr"
	"github.com/reoring/normalizr/source"
)

func TestJSONBytes_KeepsNumbers(t *testing.T) {
	v, err := source.JSONBytes([]byte(`{"id": 9007199254740993, "tags": ["a"], "ok": true}`))
	require.NoError(t, err)

	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, json.Number("9007199254740993"), m["id"])
	assert.Equal(t, []any{"a"}, m["tags"])
	assert.Equal(t, true, m["ok"])

	key, ok := normalizr.EntityKey(m["id"])
	assert.True(t, ok)
	assert.Equal(t, "9007199254740993", key)
}

func TestJSONReader_Errors(t *testing.T) {
	_, err := source.JSONReader(strings.NewReader(`{"a":`))
	require.Error(t, err)

	_, err = source.JSONBytes([]byte(`{"a":1} {"b":2}`))
	assert.ErrorIs(t, err, source.ErrTrailingData)

	_, err = source.JSONBytes([]byte("[1, 2]\n\n"))
	assert.NoError(t, err)
}

func TestYAMLBytes_PlainMaps(t *testing.T) {
	v, err := source.YAMLBytes([]byte("id: 7\nauthor:\n  id: u1\n  name: Paul\nlist:\n  - {a: 1}\n"))
	require.NoError(t, err)

	m, ok := v.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 7, m["id"])
	assert.IsType(t, map[string]any{}, m["author"])
	assert.IsType(t, map[string]any{}, m["list"].([]any)[0])

	v, err = source.YAMLBytes(nil)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestYAMLDocuments(t *testing.T) {
	docs, err := source.YAMLDocuments(strings.NewReader("id: 1\n---\nid: 2\n"))
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, map[string]any{"id": 2}, docs[1])
}

func TestPlain_NonStringKeys(t *testing.T) {
	got := source.Plain(map[any]any{1: "a", "b": []any{map[any]any{"c": true}}})
	assert.Equal(t, map[string]any{"1": "a", "b": []any{map[string]any{"c": true}}}, got)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, source.FormatYAML, source.FormatFor("x.YML"))
	assert.Equal(t, source.FormatJSON, source.FormatFor("x.json"))
	assert.Equal(t, source.FormatJSON, source.FormatFor("-"))

	f, err := source.ParseFormat("yaml")
	require.NoError(t, err)
	assert.Equal(t, "yaml", f.String())
	_, err = source.ParseFormat("toml")
	assert.Error(t, err)
}

func TestDecodeAndNormalize(t *testing.T) {
	doc, err := source.Decode(strings.NewReader(`{"id": 123, "author": {"id": 8472, "name": "Paul"}}`), source.FormatJSON)
	require.NoError(t, err)

	user := normalizr.NewRecord("user", normalizr.F("name", normalizr.Scalar()))
	article := normalizr.NewRecord("article", normalizr.F("author", user))
	out, err := normalizr.Normalize(doc, article)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, source.Encode(&buf, out, source.FormatJSON, false))
	assert.JSONEq(t, `{
		"result": 123,
		"entities": {
			"article": {"123": {"id": 123, "author": 8472}},
			"user": {"8472": {"id": 8472, "name": "Paul"}}
		}
	}`, buf.String())

	buf.Reset()
	require.NoError(t, source.Encode(&buf, out, source.FormatYAML, true))
	assert.Contains(t, buf.String(), "entities:")
}
