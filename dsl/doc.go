// Package dsl provides fluent builders for normalizr schemas.
//
// Overview
//   - Record(name): declare an entity type; chain Field/ID and finish with Build()/MustBuild().
//   - Field(...).Optional()/Default(v): wrap the last field in an Optional.
//   - Array(elem), Ref(record), Lazy(fn), Scalar(): the remaining node kinds.
//   - Union(): alternatives picked by a discriminator field or a custom picker.
//   - (*recordBuilder).Self(): a lazy node resolving to the record being built,
//     for self-referential types (comments with replies, trees).
//
// Example
//
//	user := dsl.Record("user").Field("name", dsl.Scalar()).MustBuild()
//	comment := dsl.Record("comment")
//	comment.Field("author", dsl.Ref(user)).
//	    Field("replies", dsl.Array(comment.Self()))
//	article := dsl.Record("article").
//	    Field("author", user).
//	    Field("comments", dsl.Array(comment.MustBuild())).
//	    MustBuild()
//
// Build reports declaration mistakes (empty or duplicate field names, nil
// schemas, empty unions) as normalizr.Issues; normalization itself never
// re-checks them.
package dsl
