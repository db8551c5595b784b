package engine

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/stack/internal/apperr"
	"github.com/roach88/stack/internal/model"
	"github.com/roach88/stack/internal/repo"
)

// Field identifies which assignment field an editing context targets.
type Field string

const (
	FieldName    Field = "name"
	FieldCourse  Field = "course"
	FieldDueDate Field = "due_date"
)

// EditingContext marks one (assignment, field) pair as being edited. It is
// entity-scoped: removing the assignment invalidates it.
type EditingContext struct {
	AssignmentID uuid.UUID
	Field        Field
}

// deletedSnapshot preserves a removed assignment and its prior list index
// for undo.
type deletedSnapshot struct {
	assignment model.Assignment
	index      int
}

// AddRequest carries the fields for a new assignment. A zero Status means
// StatusNotStarted.
type AddRequest struct {
	Name   string
	Course string
	Type   model.Type
	DueAt  time.Time
	Status model.Status
}

// Engine owns the canonical ordered collection of assignments and keeps it
// consistent with an AssignmentRepository via optimistic mutations.
//
// All exported methods are safe for concurrent use; shared state is guarded
// by a single mutex so exactly one mutation proceeds at a time. Remote calls
// are dispatched through the outbox and executed by one worker goroutine in
// FIFO order.
type Engine struct {
	repo    repo.AssignmentRepository
	courses repo.CourseProvider

	mu          sync.Mutex
	assignments []model.Assignment
	selectedID  uuid.UUID // uuid.Nil when nothing is selected
	editing     *EditingContext
	undoStack   []deletedSnapshot
	lastErr     *apperr.AppError

	outbox  *outbox
	wg      sync.WaitGroup
	baseCtx context.Context
	cancel  context.CancelFunc
	done    chan struct{}
}

// Option configures an Engine.
type Option func(*Engine)

// WithCourseProvider overrides the course listing implementation.
func WithCourseProvider(courses repo.CourseProvider) Option {
	return func(e *Engine) { e.courses = courses }
}

// New creates an engine bound to the given repository and starts its remote
// dispatch worker. Callers must Close the engine when done.
func New(repository repo.AssignmentRepository, opts ...Option) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	e := &Engine{
		repo:    repository,
		courses: repo.NewCourseList(),
		outbox:  newOutbox(),
		baseCtx: ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	go e.run()
	return e
}

// Close drains queued remote operations, stops the worker, and cancels any
// in-flight request context.
func (e *Engine) Close() {
	e.outbox.Close()
	<-e.done
	e.cancel()
}

// Flush blocks until every remote operation dispatched so far has completed
// (confirmed or rolled back). Used by one-shot callers and tests.
func (e *Engine) Flush() {
	e.wg.Wait()
}

// Load fetches the full collection from the repository and replaces the
// canonical collection, selecting the first item if any. On failure the
// collection is left empty and the error is surfaced.
func (e *Engine) Load(ctx context.Context) error {
	assignments, err := e.repo.FetchAssignments(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	if err != nil {
		slog.Error("failed to load assignments", "error", err)
		mapped := apperr.Map(err)
		e.lastErr = &mapped
		e.assignments = nil
		e.selectedID = uuid.Nil
		return mapped
	}

	e.assignments = assignments
	if len(assignments) > 0 {
		e.selectedID = assignments[0].ID
	} else {
		e.selectedID = uuid.Nil
	}
	return nil
}

// Add constructs a new assignment, inserts it into the collection, selects
// it, and dispatches the upsert. There is no rollback path: if the remote
// call fails the local entry stays and an error is surfaced.
func (e *Engine) Add(req AddRequest) model.Assignment {
	status := req.Status
	if status == "" {
		status = model.StatusNotStarted
	}
	assignment := model.NewAssignment(status, req.Name, req.Course, req.Type, req.DueAt)

	e.mu.Lock()
	e.assignments = append(e.assignments, assignment)
	model.SortAssignments(e.assignments)
	e.selectedID = assignment.ID
	e.mu.Unlock()

	e.enqueue(remoteOp{kind: opUpsert, assignment: assignment})
	return assignment
}

// UpdateStatus sets the status of the assignment with the given id.
func (e *Engine) UpdateStatus(id uuid.UUID, status model.Status) bool {
	return e.update(id, func(a *model.Assignment) {
		a.Status = status
	})
}

// UpdateName renames the assignment. The name is trimmed.
func (e *Engine) UpdateName(id uuid.UUID, name string) bool {
	return e.update(id, func(a *model.Assignment) {
		a.Name = strings.TrimSpace(name)
	})
}

// UpdateCourse reassigns the course. Whitespace-only input collapses to the
// empty string, meaning "uncategorized".
func (e *Engine) UpdateCourse(id uuid.UUID, course string) bool {
	return e.update(id, func(a *model.Assignment) {
		a.Course = strings.TrimSpace(course)
	})
}

// UpdateType changes the assignment type.
func (e *Engine) UpdateType(id uuid.UUID, typ model.Type) bool {
	return e.update(id, func(a *model.Assignment) {
		a.Type = typ
	})
}

// UpdateDueDate moves the due date.
func (e *Engine) UpdateDueDate(id uuid.UUID, dueAt time.Time) bool {
	return e.update(id, func(a *model.Assignment) {
		a.DueAt = dueAt
	})
}

// update applies a field mutation in place, advances UpdatedAt, re-sorts,
// clears a stale editing context, and dispatches the upsert. Returns false
// when the id is not in the collection. Failures are fire-and-report: the
// local edit is kept.
func (e *Engine) update(id uuid.UUID, mutate func(*model.Assignment)) bool {
	e.mu.Lock()
	idx := e.indexOf(id)
	if idx < 0 {
		e.mu.Unlock()
		return false
	}
	assignment := e.assignments[idx]
	mutate(&assignment)
	assignment.UpdatedAt = time.Now().UTC()
	e.assignments[idx] = assignment
	model.SortAssignments(e.assignments)
	if e.editing != nil && e.editing.AssignmentID == id {
		e.editing = nil
	}
	e.mu.Unlock()

	e.enqueue(remoteOp{kind: opUpsert, assignment: assignment})
	return true
}

// DeleteSelected removes the selected assignment, pushes an undo snapshot,
// moves the selection to a neighbor, and dispatches the remote delete. On
// remote failure the assignment is reinserted at its original index,
// reselected, the snapshot dropped, and an error surfaced. A no-op when
// nothing is selected or the selection is already gone.
func (e *Engine) DeleteSelected() bool {
	e.mu.Lock()
	id := e.selectedID
	idx := e.indexOf(id)
	if id == uuid.Nil || idx < 0 {
		e.mu.Unlock()
		return false
	}

	removed := e.assignments[idx]
	e.assignments = append(e.assignments[:idx], e.assignments[idx+1:]...)
	e.undoStack = append(e.undoStack, deletedSnapshot{assignment: removed, index: idx})

	// Prefer the item that slid into the removed slot, else the new last
	// item, else nothing.
	switch {
	case idx < len(e.assignments):
		e.selectedID = e.assignments[idx].ID
	case len(e.assignments) > 0:
		e.selectedID = e.assignments[len(e.assignments)-1].ID
	default:
		e.selectedID = uuid.Nil
	}
	if e.editing != nil && e.editing.AssignmentID == id {
		e.editing = nil
	}
	e.mu.Unlock()

	e.enqueue(remoteOp{
		kind: opDelete,
		id:   removed.ID,
		onFailure: func() {
			e.rollbackDelete(removed, idx)
		},
	})
	return true
}

// rollbackDelete restores a failed delete. Called with the state lock held.
func (e *Engine) rollbackDelete(removed model.Assignment, index int) {
	e.dropSnapshot(removed.ID)
	at := index
	if at > len(e.assignments) {
		at = len(e.assignments)
	}
	e.insertAt(removed, at)
	e.selectedID = removed.ID
}

// dropSnapshot removes the undo snapshot for the given assignment, searching
// from the top of the stack, so a failed delete never leaves an orphaned
// snapshot behind even when later deletions have stacked on top of it.
func (e *Engine) dropSnapshot(id uuid.UUID) {
	for i := len(e.undoStack) - 1; i >= 0; i-- {
		if e.undoStack[i].assignment.ID == id {
			e.undoStack = append(e.undoStack[:i], e.undoStack[i+1:]...)
			return
		}
	}
}

// UndoDelete pops the most recent deletion snapshot, reinserts it at its
// original index (clamped to the current length), selects it, and re-upserts
// it remotely. A no-op when the stack is empty. An upsert failure only
// surfaces an error; the item stays locally restored.
func (e *Engine) UndoDelete() bool {
	e.mu.Lock()
	n := len(e.undoStack)
	if n == 0 {
		e.mu.Unlock()
		return false
	}
	snapshot := e.undoStack[n-1]
	e.undoStack = e.undoStack[:n-1]

	at := snapshot.index
	if at > len(e.assignments) {
		at = len(e.assignments)
	}
	e.insertAt(snapshot.assignment, at)
	e.selectedID = snapshot.assignment.ID
	e.mu.Unlock()

	e.enqueue(remoteOp{kind: opUpsert, assignment: snapshot.assignment})
	return true
}

// Select sets the selection. Selecting uuid.Nil is equivalent to Deselect.
func (e *Engine) Select(id uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selectedID = id
	if id == uuid.Nil {
		e.editing = nil
	}
}

// Deselect clears the selection and any editing context.
func (e *Engine) Deselect() {
	e.Select(uuid.Nil)
}

// MoveSelection shifts the selection by delta list positions, clamped to the
// collection bounds. With no current selection the first item is selected.
func (e *Engine) MoveSelection(delta int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.assignments) == 0 {
		return
	}
	idx := e.indexOf(e.selectedID)
	if idx < 0 {
		e.selectedID = e.assignments[0].ID
		return
	}
	target := idx + delta
	if target < 0 {
		target = 0
	}
	if target > len(e.assignments)-1 {
		target = len(e.assignments) - 1
	}
	e.selectedID = e.assignments[target].ID
}

// BeginEditingSelectedName opens an editing context on the selected
// assignment's name. A no-op without a selection.
func (e *Engine) BeginEditingSelectedName() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.selectedID == uuid.Nil {
		return
	}
	e.editing = &EditingContext{AssignmentID: e.selectedID, Field: FieldName}
}

// RequestEditing opens an editing context on the given (assignment, field).
func (e *Engine) RequestEditing(id uuid.UUID, field Field) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = &EditingContext{AssignmentID: id, Field: field}
}

// ClearEditing cancels the editing context, if any.
func (e *Engine) ClearEditing() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = nil
}

// Assignments returns a copy of the canonical collection in its current
// (sorted) order.
func (e *Engine) Assignments() []model.Assignment {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]model.Assignment, len(e.assignments))
	copy(out, e.assignments)
	return out
}

// SelectedID returns the selected assignment id, ok=false when none.
func (e *Engine) SelectedID() (uuid.UUID, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectedID, e.selectedID != uuid.Nil
}

// Editing returns the current editing context, ok=false when none.
func (e *Engine) Editing() (EditingContext, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.editing == nil {
		return EditingContext{}, false
	}
	return *e.editing, true
}

// CanUndoDelete reports whether an undo snapshot is available.
func (e *Engine) CanUndoDelete() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.undoStack) > 0
}

// UndoDepth returns the number of pending undo snapshots.
func (e *Engine) UndoDepth() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.undoStack)
}

// AvailableCourses lists the distinct course names in the collection.
func (e *Engine) AvailableCourses() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.courses.AvailableCourses(e.assignments)
}

// Err returns the current user-visible error, ok=false when none. The last
// failure wins; it stays until dismissed.
func (e *Engine) Err() (apperr.AppError, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastErr == nil {
		return apperr.AppError{}, false
	}
	return *e.lastErr, true
}

// DismissError clears the user-visible error slot.
func (e *Engine) DismissError() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastErr = nil
}

// run is the remote dispatch loop. Exactly one goroutine executes it, so
// remote writes happen strictly in dispatch order.
func (e *Engine) run() {
	defer close(e.done)
	for {
		op, ok := e.outbox.TryDequeue()
		if ok {
			e.perform(op)
			continue
		}

		select {
		case <-e.baseCtx.Done():
			return
		case <-e.outbox.Wait():
			if e.outbox.Closed() && e.outbox.Len() == 0 {
				return
			}
		}
	}
}

// perform executes one remote operation and delivers its completion back
// under the state lock.
func (e *Engine) perform(op remoteOp) {
	defer e.wg.Done()

	var err error
	switch op.kind {
	case opUpsert:
		err = e.repo.UpsertAssignment(e.baseCtx, op.assignment)
	case opDelete:
		err = e.repo.DeleteAssignment(e.baseCtx, op.id)
	}

	if err == nil {
		slog.Debug("remote operation confirmed", "op", op.kind, "id", op.targetID())
		return
	}
	if errors.Is(err, context.Canceled) {
		// Engine shutting down; nobody is left to observe the error.
		return
	}

	slog.Error("remote operation failed", "op", op.kind, "id", op.targetID(), "error", err)
	mapped := apperr.Map(err)

	e.mu.Lock()
	defer e.mu.Unlock()
	if op.onFailure != nil {
		op.onFailure()
	}
	e.lastErr = &mapped
}

// enqueue hands an operation to the outbox, accounting for Flush.
func (e *Engine) enqueue(op remoteOp) {
	e.wg.Add(1)
	if !e.outbox.Enqueue(op) {
		e.wg.Done()
		slog.Warn("engine closed, dropping remote operation", "op", op.kind, "id", op.targetID())
	}
}

// indexOf returns the collection index of id, or -1. Callers hold the lock.
func (e *Engine) indexOf(id uuid.UUID) int {
	for i, a := range e.assignments {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// insertAt splices the assignment in at the given index without re-sorting:
// rollback and undo restore the exact prior position. Callers hold the lock.
func (e *Engine) insertAt(assignment model.Assignment, at int) {
	e.assignments = append(e.assignments, model.Assignment{})
	copy(e.assignments[at+1:], e.assignments[at:])
	e.assignments[at] = assignment
}
