package store

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/stack/internal/supabase"
)

func openTestStore(t *testing.T) *SessionStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testSession() supabase.Session {
	return supabase.Session{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User: supabase.User{
			ID:    uuid.MustParse("b7f3a1d2-9c44-4e0f-8d3a-5a9b6c7d8e9f"),
			Email: "student@example.com",
		},
	}
}

func TestSessionStore_EmptyLoad(t *testing.T) {
	s := openTestStore(t)

	session, err := s.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, session, "a fresh store holds no session")
}

func TestSessionStore_SaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	want := testSession()

	require.NoError(t, s.Save(want))

	got, err := s.LoadSession()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want, *got)
}

func TestSessionStore_SaveReplaces(t *testing.T) {
	s := openTestStore(t)

	first := testSession()
	require.NoError(t, s.Save(first))

	second := first
	second.AccessToken = "rotated-access-token"
	second.RefreshToken = "rotated-refresh-token"
	require.NoError(t, s.Save(second))

	got, err := s.LoadSession()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "rotated-access-token", got.AccessToken, "only one session row ever exists")
}

func TestSessionStore_Clear(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.Save(testSession()))

	require.NoError(t, s.Clear())

	got, err := s.LoadSession()
	require.NoError(t, err)
	assert.Nil(t, got)

	// Clearing an already-empty store is fine.
	assert.NoError(t, s.Clear())
}

func TestSessionStore_PersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(testSession()))
	require.NoError(t, s.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.LoadSession()
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, testSession(), *got)
}
