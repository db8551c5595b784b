package supabase

import (
	"context"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/roach88/stack/internal/model"
)

const assignmentsPath = "/rest/v1/assignments"

// AssignmentRepository is the remote, HTTP-backed implementation of
// repo.AssignmentRepository.
type AssignmentRepository struct {
	client *Client
}

// NewAssignmentRepository creates a repository backed by the given client.
func NewAssignmentRepository(client *Client) *AssignmentRepository {
	return &AssignmentRepository{client: client}
}

// FetchAssignments retrieves the full collection. The server is asked to
// order by due_at, but the result is re-sorted locally: server order is not
// trusted for the name tie-break.
func (r *AssignmentRepository) FetchAssignments(ctx context.Context) ([]model.Assignment, error) {
	records, err := Execute[[]assignmentRecord](ctx, r.client, RequestSpec{
		Path: assignmentsPath,
		Query: url.Values{
			"select": {"*"},
			"order":  {"due_at"},
		},
	})
	if err != nil {
		return nil, err
	}

	assignments := make([]model.Assignment, 0, len(records))
	for _, rec := range records {
		assignments = append(assignments, rec.toModel())
	}
	model.SortAssignments(assignments)
	return assignments, nil
}

// UpsertAssignment inserts or replaces the assignment, tagged with the
// authenticated user's id. Fails with ErrMissingSession before any HTTP
// call when no user is authenticated: anonymous upserts are not permitted.
func (r *AssignmentRepository) UpsertAssignment(ctx context.Context, assignment model.Assignment) error {
	userID, ok := r.client.CurrentUserID()
	if !ok {
		return ErrMissingSession
	}

	_, err := Execute[[]assignmentRecord](ctx, r.client, RequestSpec{
		Method: http.MethodPost,
		Path:   assignmentsPath,
		Query:  url.Values{"on_conflict": {"id"}},
		Body:   []assignmentRecord{newAssignmentRecord(assignment, userID)},
		Prefer: "return=representation,resolution=merge-duplicates",
	})
	return err
}

// DeleteAssignment removes the assignment with the given id.
func (r *AssignmentRepository) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	return r.client.ExecuteVoid(ctx, RequestSpec{
		Method: http.MethodDelete,
		Path:   assignmentsPath,
		Query:  url.Values{"id": {"eq." + id.String()}},
	})
}
