// Package repo defines the assignment persistence boundary.
//
// AssignmentRepository is the polymorphic contract the sync engine programs
// against: fetch the full collection, upsert one assignment, delete by id.
// Two implementations exist:
//
//   - MemoryRepository (this package): a seeded, mutex-guarded map. Mutations
//     are synchronous in effect - immediately visible to subsequent fetches.
//     Used for tests and for running without a Supabase configuration.
//   - supabase.AssignmentRepository: the remote, HTTP-backed store.
//
// Both implementations return the collection sorted by the canonical order
// (due date ascending, name ascending) so the engine is agnostic to which is
// wired in.
package repo
