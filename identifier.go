package normalizr

import (
	"encoding/json"
	"strconv"
)

// IdentifierOf returns the value of r's identifier field in input. It never
// fails: a non-object input or a missing field yields (nil, false).
func IdentifierOf(input any, r *Record) (any, bool) {
	m, ok := input.(map[string]any)
	if !ok {
		return nil, false
	}
	v, ok := m[IdentifierFieldName(r)]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// EntityKey renders an identifier into the string key used inside an entity
// bucket. Nil, empty strings and composite values are not usable keys.
func EntityKey(id any) (string, bool) {
	switch v := id.(type) {
	case nil:
		return "", false
	case string:
		return v, v != ""
	case json.Number:
		return v.String(), v != ""
	case int:
		return strconv.Itoa(v), true
	case int8:
		return strconv.FormatInt(int64(v), 10), true
	case int16:
		return strconv.FormatInt(int64(v), 10), true
	case int32:
		return strconv.FormatInt(int64(v), 10), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case uint:
		return strconv.FormatUint(uint64(v), 10), true
	case uint8:
		return strconv.FormatUint(uint64(v), 10), true
	case uint16:
		return strconv.FormatUint(uint64(v), 10), true
	case uint32:
		return strconv.FormatUint(uint64(v), 10), true
	case uint64:
		return strconv.FormatUint(v, 10), true
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	}
	return "", false
}

// isIdentifier reports whether v could stand in for an entity at a
// reference site.
func isIdentifier(v any) bool {
	_, ok := EntityKey(v)
	return ok
}
