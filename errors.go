package normalizr

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes
const (
	CodeInvalidInputKind  = "invalid_input_kind"
	CodeInvalidSchemaKind = "invalid_schema_kind"
	CodeNotAnObject       = "not_an_object"
	CodeNotAPlainObject   = "not_a_plain_object"
	CodeNotARecordSchema  = "not_a_record_schema"
	// Traversal failures
	CodeUnionUnresolved = "union_unresolved"
	CodeCyclicSchema    = "cyclic_schema"
	CodeTooManyEntities = "too_many_entities"
	CodeTooDeep         = "too_deep"
)

var (
	// ErrInvalidInputKind matches issues about the shape of the input value.
	ErrInvalidInputKind = errors.New("normalizr: invalid input kind")
	// ErrInvalidSchemaKind matches issues about the shape of the schema.
	ErrInvalidSchemaKind = errors.New("normalizr: invalid schema kind")
)

// Issue represents a single normalization failure.
type Issue struct {
	Path    string // JSON Pointer into the input (for example: /comments/0/user).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: expected kind, offending type name, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters for i18n and logging.
	Params map[string]any
}

// category maps a fine-grained code to the sentinel it rolls up to.
func (it Issue) category() error {
	switch it.Code {
	case CodeInvalidInputKind, CodeNotAnObject, CodeNotAPlainObject:
		return ErrInvalidInputKind
	case CodeInvalidSchemaKind, CodeNotARecordSchema, CodeCyclicSchema:
		return ErrInvalidSchemaKind
	}
	return nil
}

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. not_a_plain_object at /: expected plain object
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Message != "" && it.Message != it.Code {
			fmt.Fprintf(b, ": %s", it.Message)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is lets errors.Is match ErrInvalidInputKind and ErrInvalidSchemaKind
// against any contained issue.
func (iss Issues) Is(target error) bool {
	for _, it := range iss {
		if c := it.category(); c != nil && c == target {
			return true
		}
	}
	return false
}

// Unwrap exposes issue causes to errors.Is/As.
func (iss Issues) Unwrap() []error {
	var out []error
	for _, it := range iss {
		if it.Cause != nil {
			out = append(out, it.Cause)
		}
	}
	return out
}

// HasCode reports whether any issue carries code.
func (iss Issues) HasCode(code string) bool {
	for _, it := range iss {
		if it.Code == code {
			return true
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// HasCode reports whether err carries an issue with the given code.
func HasCode(err error, code string) bool {
	iss, ok := AsIssues(err)
	return ok && iss.HasCode(code)
}
