package model

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Assignment is a single tracked piece of coursework.
//
// ID is generated once at creation and never reassigned. CreatedAt is
// immutable after construction; UpdatedAt advances on every mutation made
// through the engine.
type Assignment struct {
	ID        uuid.UUID
	Status    Status
	Name      string
	Course    string
	Type      Type
	DueAt     time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAssignment constructs an assignment with a fresh ID and both timestamps
// set to now. Name is trimmed; a whitespace-only course collapses to the
// empty string ("uncategorized").
func NewAssignment(status Status, name, course string, typ Type, dueAt time.Time) Assignment {
	now := time.Now().UTC()
	if strings.TrimSpace(course) == "" {
		course = ""
	}
	return Assignment{
		ID:        uuid.New(),
		Status:    status,
		Name:      strings.TrimSpace(name),
		Course:    course,
		Type:      typ,
		DueAt:     dueAt,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Less reports whether a sorts before b in the canonical collection order:
// due date ascending, name ascending as tie-break.
func Less(a, b Assignment) bool {
	if a.DueAt.Equal(b.DueAt) {
		return a.Name < b.Name
	}
	return a.DueAt.Before(b.DueAt)
}

// SortAssignments orders the slice in place by the canonical collection
// order. The sort is stable so equal-key entries keep their relative order.
func SortAssignments(assignments []Assignment) {
	sort.SliceStable(assignments, func(i, j int) bool {
		return Less(assignments[i], assignments[j])
	})
}
