// Package model defines the core Stack domain types.
//
// The central type is Assignment: a single tracked piece of coursework with
// a stable UUID identity, a status, a type, and a due date. The package also
// owns the canonical collection ordering (due date ascending, name ascending
// as tie-break) that every consumer of an assignment list relies on.
//
// Enum types (Status, Type) serialize as their human-readable display strings
// on the wire. Parsing is lenient by policy: unrecognized wire strings map to
// the zero-value member (NotStarted / Homework) so that server-side vocabulary
// drift never fails a whole decode. Callers that need to observe the fallback
// use the (value, ok) form of the parse functions.
package model
