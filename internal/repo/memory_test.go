package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stack/internal/model"
)

func TestMemoryRepository_FetchReturnsCanonicalOrder(t *testing.T) {
	now := time.Now().UTC()
	late := model.NewAssignment(model.StatusNotStarted, "Late", "", model.TypeHomework, now.Add(48*time.Hour))
	early := model.NewAssignment(model.StatusNotStarted, "Early", "", model.TypeHomework, now)

	r := NewMemoryRepository([]model.Assignment{late, early})

	got, err := r.FetchAssignments(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Early", got[0].Name)
	assert.Equal(t, "Late", got[1].Name)
}

func TestMemoryRepository_UpsertInsertsAndReplaces(t *testing.T) {
	r := NewMemoryRepository(nil)
	ctx := context.Background()

	a := model.NewAssignment(model.StatusNotStarted, "Lab Report", "CHEM 142", model.TypeReport, time.Now())
	require.NoError(t, r.UpsertAssignment(ctx, a))
	assert.Equal(t, 1, r.Len())

	a.Status = model.StatusCompleted
	require.NoError(t, r.UpsertAssignment(ctx, a))
	assert.Equal(t, 1, r.Len(), "upsert by id replaces, never duplicates")

	got, err := r.FetchAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.StatusCompleted, got[0].Status)
}

func TestMemoryRepository_DeleteIsIdempotent(t *testing.T) {
	r := NewSeededRepository()
	ctx := context.Background()

	got, err := r.FetchAssignments(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)

	require.NoError(t, r.DeleteAssignment(ctx, got[0].ID))
	assert.Equal(t, 2, r.Len())

	// Deleting the same id again is a no-op, not an error.
	require.NoError(t, r.DeleteAssignment(ctx, got[0].ID))
	assert.Equal(t, 2, r.Len())
}

func TestCourseList_DistinctSortedCaseInsensitive(t *testing.T) {
	now := time.Now()
	assignments := []model.Assignment{
		model.NewAssignment(model.StatusNotStarted, "A", "math 126", model.TypeHomework, now),
		model.NewAssignment(model.StatusNotStarted, "B", "CSE 344", model.TypeHomework, now),
		model.NewAssignment(model.StatusNotStarted, "C", "CSE 344", model.TypeHomework, now),
		model.NewAssignment(model.StatusNotStarted, "D", "", model.TypeHomework, now),
		model.NewAssignment(model.StatusNotStarted, "E", "ENG 215", model.TypeHomework, now),
	}

	courses := NewCourseList().AvailableCourses(assignments)

	assert.Equal(t, []string{"CSE 344", "ENG 215", "math 126"}, courses)
}

func TestCourseList_EmptyCollection(t *testing.T) {
	courses := NewCourseList().AvailableCourses(nil)
	assert.Empty(t, courses)
}
