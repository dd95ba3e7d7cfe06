package dsl

import (
	normalizr "github.com/reoring/normalizr"
)

// Scalar returns the leaf node.
func Scalar() normalizr.Node { return normalizr.Scalar() }

// Array wraps elem in a collection.
func Array(elem normalizr.Node) normalizr.Node { return normalizr.ArrayOf(elem) }

// Ref points at a record stored in its own bucket. A raw identifier at the
// reference site is kept as is.
func Ref(r *normalizr.Record) normalizr.Node { return normalizr.RefTo(r) }

// Lazy defers resolution to traversal time.
func Lazy(fn func() normalizr.Node) normalizr.Node { return normalizr.Defer(fn) }

// Optional wraps n. With a default, missing values are replaced by def.
func Optional(n normalizr.Node) normalizr.Node { return normalizr.Maybe(n) }

// OptionalDefault wraps n and substitutes def for missing or null values.
// def is shared between calls; pass immutable values.
func OptionalDefault(n normalizr.Node, def any) normalizr.Node { return normalizr.MaybeOr(n, def) }
