// Package supabase implements the remote side of assignment persistence:
// an authenticated HTTP client for a PostgREST-style API, the wire-format
// codec, the auth endpoints, and the remote AssignmentRepository.
//
// # Request building
//
// Every request carries the project anon key in the apikey header. Requests
// that require auth use the current session's access token as the bearer;
// building one without a session fails with ErrMissingSession before any
// network traffic. Pre-auth endpoints (signup, token) mark the request
// Anonymous and use the anon key itself as the bearer.
//
// # Error classification
//
// Any non-2xx response decodes into an *ErrorResponse. Bodies that are not
// the structured {message, error, error_description, status} shape are
// preserved as raw text together with the HTTP status. A 2xx body that fails
// to decode is reported as ErrCorruptPayload.
//
// # Session state
//
// The client holds at most one session, guarded by a mutex. Each request
// snapshots the access token at build time, so SetSession/ClearSession are
// safe while requests are in flight. When a SessionStore collaborator is
// configured the held session is loaded from it at construction and every
// change is written through.
package supabase
