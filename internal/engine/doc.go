// Package engine implements the list synchronization core: the canonical
// ordered collection of assignments, optimistic local mutations, and the
// reconciliation of those mutations against a remote repository.
//
// # Mutation model
//
// Every mutation follows Idle -> LocalApplied -> {Confirmed | RolledBack}.
// The local change (insert, field edit, delete) is applied synchronously
// under the engine's state lock and the collection is re-sorted, so callers
// always observe the optimistic result immediately. The matching remote call
// is then dispatched asynchronously.
//
// Delete is the one path with full rollback: on remote failure the removed
// assignment is reinserted at its original index, reselected, and its undo
// snapshot discarded. Add and field updates are fire-and-report - the local
// edit stays and only an error is surfaced. That asymmetry is the product's
// local-first policy.
//
// # Serialization
//
// All shared state (collection, selection, editing context, undo stack,
// error slot) is guarded by one mutex: exactly one mutation proceeds at a
// time. Remote calls never run under that lock. They are pushed onto a FIFO
// outbox consumed by a single worker goroutine, so writes reach the remote
// store in dispatch order; a delete can therefore never be overtaken by an
// earlier in-flight upsert for the same assignment. Completions re-acquire
// the state lock before touching shared state.
//
// # Undo
//
// Deletions push a snapshot (assignment + originating index) onto a LIFO
// stack. Undo pops the most recent snapshot, reinserts it clamped to the
// current length, and re-upserts it remotely.
package engine
