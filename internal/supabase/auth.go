package supabase

import (
	"context"
	"net/http"
	"net/url"
)

// AuthService drives the pre-auth endpoints: sign-up and password sign-in.
// On success the resulting session is installed on the client (and written
// through to its session store).
type AuthService struct {
	client *Client
}

// NewAuthService creates an auth service bound to the given client.
func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is the body returned by /auth/v1/signup and /auth/v1/token.
type authResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// session validates the response carries a complete session. Any missing
// piece means the server did not establish one (e.g. signup with email
// confirmation pending) and maps to ErrMissingSession.
func (r authResponse) session() (Session, error) {
	if r.AccessToken == "" || r.RefreshToken == "" || r.User == nil {
		return Session{}, ErrMissingSession
	}
	return Session{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		User:         *r.User,
	}, nil
}

// SignUp registers a new account and signs it in.
func (a *AuthService) SignUp(ctx context.Context, email, password string) (Session, error) {
	return a.authenticate(ctx, RequestSpec{
		Method:    http.MethodPost,
		Path:      "/auth/v1/signup",
		Body:      credentials{Email: email, Password: password},
		Anonymous: true,
	})
}

// SignIn exchanges an email/password pair for a session.
func (a *AuthService) SignIn(ctx context.Context, email, password string) (Session, error) {
	return a.authenticate(ctx, RequestSpec{
		Method:    http.MethodPost,
		Path:      "/auth/v1/token",
		Query:     url.Values{"grant_type": {"password"}},
		Body:      credentials{Email: email, Password: password},
		Anonymous: true,
	})
}

func (a *AuthService) authenticate(ctx context.Context, spec RequestSpec) (Session, error) {
	resp, err := Execute[authResponse](ctx, a.client, spec)
	if err != nil {
		return Session{}, err
	}
	session, err := resp.session()
	if err != nil {
		return Session{}, err
	}
	a.client.SetSession(session)
	return session, nil
}
