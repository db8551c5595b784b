package repo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/stack/internal/model"
)

// MemoryRepository is an in-memory AssignmentRepository backed by a keyed map.
// Safe for concurrent use.
type MemoryRepository struct {
	mu          sync.Mutex
	assignments map[uuid.UUID]model.Assignment
}

// NewMemoryRepository creates a repository holding the given assignments.
func NewMemoryRepository(seed []model.Assignment) *MemoryRepository {
	assignments := make(map[uuid.UUID]model.Assignment, len(seed))
	for _, a := range seed {
		assignments[a.ID] = a
	}
	return &MemoryRepository{assignments: assignments}
}

// NewSeededRepository creates a repository pre-populated with example
// assignments, used when running without a remote configuration.
func NewSeededRepository() *MemoryRepository {
	now := time.Now().UTC()
	return NewMemoryRepository([]model.Assignment{
		model.NewAssignment(model.StatusInProgress, "Database Systems Essay", "CSE 344", model.TypeEssay, now.AddDate(0, 0, 2)),
		model.NewAssignment(model.StatusNotStarted, "Linear Algebra Quiz", "MATH 308", model.TypeQuiz, now.AddDate(0, 0, 1)),
		model.NewAssignment(model.StatusCompleted, "Poetry Presentation", "ENG 215", model.TypePresentation, now.AddDate(0, 0, -1)),
	})
}

// FetchAssignments returns all assignments in canonical order.
func (r *MemoryRepository) FetchAssignments(ctx context.Context) ([]model.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Assignment, 0, len(r.assignments))
	for _, a := range r.assignments {
		out = append(out, a)
	}
	model.SortAssignments(out)
	return out, nil
}

// UpsertAssignment inserts or replaces the assignment by id.
func (r *MemoryRepository) UpsertAssignment(ctx context.Context, assignment model.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assignments[assignment.ID] = assignment
	return nil
}

// DeleteAssignment removes the assignment with the given id, if present.
func (r *MemoryRepository) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.assignments, id)
	return nil
}

// Len reports the number of stored assignments. Used by tests and the CLI
// status output.
func (r *MemoryRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.assignments)
}
