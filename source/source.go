// Package source decodes JSON and YAML documents into the plain values
// normalizr traverses: map[string]any, []any and scalars. JSON numbers are
// kept as json.Number so large identifiers survive unchanged.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Format names a document encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

func (f Format) String() string {
	if f == FormatYAML {
		return "yaml"
	}
	return "json"
}

// ParseFormat maps "json"/"yaml"/"yml" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatJSON, fmt.Errorf("source: unknown format %q", s)
}

// FormatFor guesses the format from a file name; anything that is not
// .yaml/.yml is JSON.
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// ErrTrailingData is returned when a JSON document is followed by more
// values.
var ErrTrailingData = errors.New("source: trailing data after JSON document")

// Decode reads one document of the given format from r.
func Decode(r io.Reader, f Format) (any, error) {
	if f == FormatYAML {
		return YAMLReader(r)
	}
	return JSONReader(r)
}

// JSONReader decodes a single JSON document from r.
func JSONReader(r io.Reader) (any, error) {
	dec := gojson.NewDecoder(r)
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("source: json: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, ErrTrailingData
	}
	return v, nil
}

// JSONBytes decodes a single JSON document from b.
func JSONBytes(b []byte) (any, error) { return JSONReader(bytes.NewReader(b)) }

// YAMLReader decodes the first YAML document from r.
func YAMLReader(r io.Reader) (any, error) {
	dec := yaml.NewDecoder(r)
	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("source: yaml: %w", err)
	}
	return Plain(v), nil
}

// YAMLBytes decodes the first YAML document from b.
func YAMLBytes(b []byte) (any, error) { return YAMLReader(bytes.NewReader(b)) }

// YAMLDocuments decodes every document of a multi-document YAML stream.
func YAMLDocuments(r io.Reader) ([]any, error) {
	dec := yaml.NewDecoder(r)
	var docs []any
	for {
		var v any
		if err := dec.Decode(&v); err != nil {
			if errors.Is(err, io.EOF) {
				return docs, nil
			}
			return nil, fmt.Errorf("source: yaml document %d: %w", len(docs), err)
		}
		docs = append(docs, Plain(v))
	}
}

// Plain converts YAML-decoded values (which may contain map[any]any) into
// JSON-like values recursively. Non-string keys are rendered with fmt.
func Plain(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = Plain(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprint(k)
			}
			out[ks] = Plain(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = Plain(t[i])
		}
		return arr
	default:
		return v
	}
}

// Encode writes v in the given format. JSON output is indented when indent
// is true.
func Encode(w io.Writer, v any, f Format, indent bool) error {
	if f == FormatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("source: yaml encode: %w", err)
		}
		return enc.Close()
	}
	enc := gojson.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("source: json encode: %w", err)
	}
	return nil
}
