// Package session persists the signed-in session of the terminal client in
// the local SQLite database, so a restart resumes it.
package session

import (
	"context"
	"time"
)

// Session is what the client remembers after signin.
type Session struct {
	Token     string
	UserID    string
	Email     string
	ExpiresAt time.Time
}

// Expired reports whether the token lifetime has passed at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// Repository loads and stores the single current session. Load returns
// (nil, nil) when nobody is signed in.
type Repository interface {
	Load(ctx context.Context) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Clear(ctx context.Context) error
}
