package normalizr

import "reflect"

// inputKind classifies a caller value before traversal.
type inputKind int

const (
	inputScalar inputKind = iota
	inputPlainObject
	inputObject // object-like but not map[string]any
	inputSequence
)

// classifyInput decides how a raw value is treated at the entry point.
// Only map[string]any counts as a plain object; other maps, structs and
// pointers to them are objects that cannot be traversed safely. []byte is a
// scalar.
func classifyInput(v any) inputKind {
	switch t := v.(type) {
	case nil:
		return inputScalar
	case map[string]any:
		if t == nil {
			return inputScalar
		}
		return inputPlainObject
	case []any, []map[string]any:
		return inputSequence
	case []byte:
		return inputScalar
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return inputScalar
		}
		return inputObject
	case reflect.Struct:
		return inputObject
	case reflect.Pointer:
		if rv.IsNil() {
			return inputScalar
		}
		switch rv.Elem().Kind() {
		case reflect.Struct, reflect.Map:
			return inputObject
		}
		return inputScalar
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return inputScalar
		}
		return inputSequence
	}
	return inputScalar
}

// sequenceItems returns the elements of a sequence input in order.
func sequenceItems(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []map[string]any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = t[i]
		}
		return out
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out
}

// identity returns a token that is equal for the same map value and distinct
// for different live maps.
func identity(m map[string]any) uintptr {
	return reflect.ValueOf(m).Pointer()
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
