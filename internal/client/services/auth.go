// Package services contains application services for the todokeeper client.
// This file defines the authentication service: signup, signin with a
// persisted session, session restore on startup, profile and logout.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/client/client"
	"github.com/dmitrijs2005/todokeeper/internal/client/models"
	"github.com/dmitrijs2005/todokeeper/internal/client/repositories/session"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Signup: create an account on the server.
//   - Signin: authenticate, remember the token locally and attach it to later calls.
//   - Restore: resume a stored session, dropping it if it has expired.
//   - Profile: fetch the current user; a rejected token clears the session.
//   - Logout: forget the token locally. The server cannot revoke it.
type AuthService interface {
	Signup(ctx context.Context, email string, password []byte) (*models.User, error)
	Signin(ctx context.Context, email string, password []byte) (*session.Session, error)
	Restore(ctx context.Context) (*session.Session, error)
	Profile(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client   client.Client
	sessions session.Repository
	now      func() time.Time
}

func NewAuthService(c client.Client, sessions session.Repository) AuthService {
	return &authService{client: c, sessions: sessions, now: time.Now}
}

func (a *authService) Signup(ctx context.Context, email string, password []byte) (*models.User, error) {
	u, err := a.client.Signup(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, fmt.Errorf("signup error: %w", err)
	}
	return u, nil
}

func (a *authService) Signin(ctx context.Context, email string, password []byte) (*session.Session, error) {
	resp, err := a.client.Signin(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, fmt.Errorf("signin error: %w", err)
	}

	s := &session.Session{
		Token:     resp.Token,
		UserID:    resp.User.ID,
		Email:     resp.User.Email,
		ExpiresAt: resp.ExpiresAt,
	}
	if err := a.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}

	a.client.SetToken(s.Token)
	return s, nil
}

func (a *authService) Restore(ctx context.Context) (*session.Session, error) {
	s, err := a.sessions.Load(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	if s.Expired(a.now()) {
		return nil, a.sessions.Clear(ctx)
	}

	a.client.SetToken(s.Token)
	return s, nil
}

func (a *authService) Profile(ctx context.Context) (*models.User, error) {
	u, err := a.client.Profile(ctx)
	if errors.Is(err, client.ErrUnauthorized) {
		if clearErr := a.Logout(ctx); clearErr != nil {
			return nil, errors.Join(err, clearErr)
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetToken("")
	return a.sessions.Clear(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
