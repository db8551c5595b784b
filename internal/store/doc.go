// Package store provides SQLite-backed persistence for the Supabase session,
// so a sign-in survives process restarts.
//
// The database holds a single-row sessions table (id fixed to 1). It is the
// concrete implementation of the supabase.SessionStore collaborator.
//
// Database configuration:
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
package store
