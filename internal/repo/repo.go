package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/roach88/stack/internal/model"
)

// AssignmentRepository is the persistence contract for assignments.
//
// FetchAssignments returns the full collection in canonical order. Upsert
// inserts or replaces by id. Delete removes by id; deleting an id that does
// not exist is not an error.
type AssignmentRepository interface {
	FetchAssignments(ctx context.Context) ([]model.Assignment, error)
	UpsertAssignment(ctx context.Context, assignment model.Assignment) error
	DeleteAssignment(ctx context.Context, id uuid.UUID) error
}
