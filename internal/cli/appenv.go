package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/roach88/stack/internal/config"
	"github.com/roach88/stack/internal/engine"
	"github.com/roach88/stack/internal/repo"
	"github.com/roach88/stack/internal/store"
	"github.com/roach88/stack/internal/supabase"
)

// AppEnv is the dependency-injected environment built once per invocation:
// configuration, remote client, repository, and engine. Client and Auth are
// nil when running against the in-memory repository.
type AppEnv struct {
	Repo   repo.AssignmentRepository
	Client *supabase.Client
	Auth   *supabase.AuthService
	Engine *engine.Engine

	sessionStore *store.SessionStore
}

// NewAppEnv constructs the environment. Without a Supabase configuration
// (or with --memory) it falls back to the seeded in-memory repository.
func NewAppEnv(opts *RootOptions) (*AppEnv, error) {
	env := &AppEnv{}

	if opts.Memory {
		env.Repo = repo.NewSeededRepository()
	} else {
		cfg, err := config.Load()
		switch {
		case errors.Is(err, config.ErrNotConfigured):
			slog.Info("no supabase configuration, using in-memory repository")
			env.Repo = repo.NewSeededRepository()
		case err != nil:
			return nil, err
		default:
			sessions, err := store.Open(sessionDBPath())
			if err != nil {
				return nil, err
			}
			env.sessionStore = sessions
			env.Client = supabase.NewClient(
				supabase.Config{BaseURL: cfg.SupabaseURL, AnonKey: cfg.AnonKey},
				supabase.WithSessionStore(sessions),
			)
			env.Auth = supabase.NewAuthService(env.Client)
			env.Repo = supabase.NewAssignmentRepository(env.Client)
		}
	}

	env.Engine = engine.New(env.Repo)
	return env, nil
}

// Close flushes pending remote operations and releases resources.
func (e *AppEnv) Close() {
	if e.Engine != nil {
		e.Engine.Flush()
		e.Engine.Close()
	}
	if e.sessionStore != nil {
		if err := e.sessionStore.Close(); err != nil {
			slog.Warn("failed to close session store", "error", err)
		}
	}
}

// RequireSession fails when no valid session is held, prompting re-login on
// expired tokens.
func (e *AppEnv) RequireSession() error {
	if e.Client == nil {
		return nil // in-memory mode needs no auth
	}
	session := e.Client.Session()
	if session == nil {
		return fmt.Errorf("not signed in: run `stack login`")
	}
	if session.Expired(time.Now()) {
		return fmt.Errorf("session expired: run `stack login` again")
	}
	return nil
}

// sessionDBPath resolves the session database location, preferring the user
// config directory.
func sessionDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "stack-session.db"
	}
	path := filepath.Join(dir, "stack")
	if err := os.MkdirAll(path, 0o700); err != nil {
		return "stack-session.db"
	}
	return filepath.Join(path, "session.db")
}
