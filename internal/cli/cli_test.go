package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	root := NewRootCommand()
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestParseDueDate(t *testing.T) {
	got, err := parseDueDate("2026-09-04")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 4, 0, 0, 0, 0, time.Local), got)

	got, err = parseDueDate("2026-09-04 23:59")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 4, 23, 59, 0, 0, time.Local), got)

	got, err = parseDueDate("2026-09-04T23:59:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 9, 4, 23, 59, 0, 0, time.UTC)))

	_, err = parseDueDate("next tuesday")
	assert.ErrorContains(t, err, "invalid due date")
}

func TestParseDueDate_EmptyDefaultsToTomorrow(t *testing.T) {
	got, err := parseDueDate("")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, 1), got, time.Minute)
}

func TestListCommand_Memory(t *testing.T) {
	out, err := executeCommand(t, "list", "--memory")
	require.NoError(t, err)

	assert.Contains(t, out, "Linear Algebra Quiz")
	assert.Contains(t, out, "Database Systems Essay")
	assert.Contains(t, out, "Poetry Presentation")
	assert.Contains(t, out, "Courses: CSE 344, ENG 215, MATH 308")
}

func TestAddCommand_Memory(t *testing.T) {
	out, err := executeCommand(t, "add", "Quiz 9", "--memory", "--course", "CS 101", "--type", "Quiz", "--due", "2026-09-04")
	require.NoError(t, err)
	assert.Contains(t, out, "Added Quiz 9")
}

func TestAddCommand_RejectsUnknownType(t *testing.T) {
	_, err := executeCommand(t, "add", "Quiz 9", "--memory", "--type", "Lab")
	assert.ErrorContains(t, err, `unknown type "Lab"`)
}

func TestSetCommand_UnknownID(t *testing.T) {
	_, err := executeCommand(t, "set", uuid.New().String(), "--memory", "--status", "In Progress")
	assert.ErrorContains(t, err, "no assignment with id")
}

func TestSetCommand_RejectsUnknownStatus(t *testing.T) {
	_, err := executeCommand(t, "set", uuid.New().String(), "--memory", "--status", "Done")
	assert.ErrorContains(t, err, `unknown status "Done"`)
}

func TestRemoveCommand_InvalidID(t *testing.T) {
	_, err := executeCommand(t, "rm", "not-a-uuid", "--memory")
	assert.ErrorContains(t, err, "invalid assignment id")
}
