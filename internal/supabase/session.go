package supabase

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// User is the authenticated identity attached to a session.
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// Session is the credential pair returned by sign-in/sign-up, plus the
// authenticated user. It authorizes /rest/v1 calls for the process lifetime
// (or across processes when persisted via a SessionStore).
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         User   `json:"user"`
}

// ExpiresAt reads the expiry claim from the access token. The token is a
// JWT minted by the auth server; it is parsed without signature verification
// since the client only needs the timestamp, not a trust decision.
// ok is false when the token is not a JWT or carries no exp claim.
func (s Session) ExpiresAt() (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.AccessToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Expired reports whether the access token's exp claim is in the past.
// Tokens without a readable expiry are treated as unexpired.
func (s Session) Expired(now time.Time) bool {
	exp, ok := s.ExpiresAt()
	return ok && exp.Before(now)
}

// SessionStore persists the session across processes. Implementations:
// store.SessionStore (SQLite).
type SessionStore interface {
	// LoadSession returns the persisted session, or (nil, nil) when none
	// is stored.
	LoadSession() (*Session, error)
	Save(session Session) error
	Clear() error
}
