package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/client/client"
	"github.com/dmitrijs2005/todokeeper/internal/client/models"
	"github.com/dmitrijs2005/todokeeper/internal/client/repositories/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedIn() *models.Session {
	return &models.Session{
		Token:     "tok",
		ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		User:      models.User{ID: "u1", Email: "a@x.com"},
	}
}

func TestSignup_TrimsEmail(t *testing.T) {
	fc := &fakeClient{signupUser: &models.User{ID: "u1", Email: "a@x.com"}}
	svc := NewAuthService(fc, newSessionRepo(t))

	u, err := svc.Signup(context.Background(), "  a@x.com ", []byte("secret1"))
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", fc.signupEmail)
	assert.Equal(t, "u1", u.ID)
}

func TestSignup_ErrorKeepsIdentity(t *testing.T) {
	fc := &fakeClient{signupErr: &client.APIError{Status: 409, Message: "User already exists"}}
	svc := NewAuthService(fc, newSessionRepo(t))

	_, err := svc.Signup(context.Background(), "a@x.com", []byte("secret1"))
	require.ErrorIs(t, err, client.ErrConflict)
}

func TestSignin_PersistsSessionAndSetsToken(t *testing.T) {
	fc := &fakeClient{signinResp: signedIn()}
	repo := newSessionRepo(t)
	svc := NewAuthService(fc, repo)

	s, err := svc.Signin(context.Background(), "a@x.com", []byte("secret1"))
	require.NoError(t, err)
	assert.Equal(t, "tok", fc.token)
	assert.Equal(t, "a@x.com", s.Email)

	stored, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "tok", stored.Token)
	assert.Equal(t, "u1", stored.UserID)
}

func TestSignin_FailureLeavesNoSession(t *testing.T) {
	fc := &fakeClient{signinErr: &client.APIError{Status: 401, Message: "Invalid email or password"}}
	repo := newSessionRepo(t)
	svc := NewAuthService(fc, repo)

	_, err := svc.Signin(context.Background(), "a@x.com", []byte("bad"))
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Empty(t, fc.token)

	stored, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("nothing stored", func(t *testing.T) {
		fc := &fakeClient{}
		s, err := NewAuthService(fc, newSessionRepo(t)).Restore(ctx)
		require.NoError(t, err)
		assert.Nil(t, s)
		assert.Empty(t, fc.token)
	})

	t.Run("valid session", func(t *testing.T) {
		repo := newSessionRepo(t)
		require.NoError(t, repo.Save(ctx, &session.Session{Token: "tok", Email: "a@x.com", ExpiresAt: time.Now().Add(time.Hour)}))

		fc := &fakeClient{}
		s, err := NewAuthService(fc, repo).Restore(ctx)
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, "tok", fc.token)
	})

	t.Run("expired session is dropped", func(t *testing.T) {
		repo := newSessionRepo(t)
		require.NoError(t, repo.Save(ctx, &session.Session{Token: "tok", ExpiresAt: time.Now().Add(-time.Minute)}))

		fc := &fakeClient{}
		s, err := NewAuthService(fc, repo).Restore(ctx)
		require.NoError(t, err)
		assert.Nil(t, s)
		assert.Empty(t, fc.token)

		stored, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Nil(t, stored)
	})
}

func TestProfile_RejectedTokenClearsSession(t *testing.T) {
	ctx := context.Background()
	repo := newSessionRepo(t)
	require.NoError(t, repo.Save(ctx, &session.Session{Token: "tok"}))

	fc := &fakeClient{token: "tok", profileErr: &client.APIError{Status: 401, Message: "Invalid or expired token"}}
	_, err := NewAuthService(fc, repo).Profile(ctx)
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Empty(t, fc.token)

	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestProfile_OtherErrorsKeepSession(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{token: "tok", profileErr: fmt.Errorf("%w: connection refused", client.ErrUnavailable)}

	_, err := NewAuthService(fc, newSessionRepo(t)).Profile(ctx)
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.Equal(t, "tok", fc.token)
}

func TestLogoutAndClose(t *testing.T) {
	ctx := context.Background()
	fc := &fakeClient{signinResp: signedIn()}
	repo := newSessionRepo(t)
	svc := NewAuthService(fc, repo)

	_, err := svc.Signin(ctx, "a@x.com", []byte("secret1"))
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	assert.Empty(t, fc.token)
	stored, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)

	require.NoError(t, svc.Close(ctx))
	assert.True(t, fc.closed)
}
