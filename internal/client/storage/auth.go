package storage

import "context"

//go:generate moq -out sessionstore_mock.go . SessionStore

// SessionStore defines persistence for the client's login session.
type SessionStore interface {
	// SaveSession stores the current session, replacing any previous one.
	SaveSession(ctx context.Context, session *Session) error

	// GetSession retrieves the stored session.
	// Returns ErrSessionNotFound if the client is not logged in.
	GetSession(ctx context.Context) (*Session, error)

	// DeleteSession removes the stored session (logout).
	DeleteSession(ctx context.Context) error
}

// Session holds the authenticated identity used on every sync call.
type Session struct {
	Username    string `json:"username"`
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"` // unix seconds
}

// Expired reports whether the session's access token has expired as of now
// (unix seconds).
func (s *Session) Expired(now int64) bool {
	return s.ExpiresAt != 0 && now >= s.ExpiresAt
}
