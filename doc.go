// Package normalizr flattens schema-described documents into an entity map.
//
// Given a tree of plain values (map[string]any, []any, scalars) and a schema
// built from Record, Collection, Optional, Union, Reference, Lazy and Scalar
// nodes, Normalize returns:
//
// - Entities: type name -> identifier -> flattened record, where every
// nested record is replaced by its identifier (and collections of records
// by ordered identifier lists)
// - Result: the root identifier, or one identifier per element for
// sequence input
//
// Repeated sightings of the same (type, identifier) are merged field by
// field, later sightings winning. Cyclic inputs terminate: every input object
// is flattened at most once per call, using an explicit work-list instead of
// native recursion for record traversal.
//
// Design policy:
// - Keep only public APIs in the root package; builders live in dsl/,
// declarative schema files in schemafile/, document decoding in source/.
// - Errors are Issues (JSON Pointer, code, message); errors.Is matches
// ErrInvalidInputKind and ErrInvalidSchemaKind.
//
// Typical usage:
//
//	user := normalizr.NewRecord("user", normalizr.F("name", normalizr.Scalar()))
//	article := normalizr.NewRecord("article", normalizr.F("author", user))
//	out, err := normalizr.Normalize(doc, article)
//	// out.Result == "123"; out.Entities["user"]["8472"]["name"] == "Paul"
package normalizr
