package normalizr

import "github.com/reoring/normalizr/i18n"

// IssueAt creates an Issue at the given path with provided code, hint and params map.
// The message is taken from the i18n catalog.
func IssueAt(p PathRef, code, hint string, params map[string]any) Issue {
	return Issue{Path: p.Pointer(), Code: code, Message: i18n.T(code, nil), Hint: hint, Params: params}
}
