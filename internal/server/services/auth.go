// Package services contains server-side business logic. This file implements
// AuthService, which handles signup, signin and the profile lookup.
package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
)

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(userID, email string) (string, *auth.Claims, error)
}

// SigninResult is a fresh session token and the user it was issued to.
type SigninResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// AuthService provides authentication-related operations:
// - Signup: validate and create users
// - Signin: verify credentials and issue a session token
// - Profile: load the user behind a verified token
type AuthService struct {
	repomanager repomanager.RepositoryManager
	hasher      auth.PasswordHasher
	tokens      TokenIssuer
	validator   *inputValidator
	logger      logging.Logger

	dummyOnce   sync.Once
	dummyDigest string
}

func NewAuthService(m repomanager.RepositoryManager, hasher auth.PasswordHasher, tokens TokenIssuer, logger logging.Logger) *AuthService {
	return &AuthService{
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		validator:   newInputValidator(),
		logger:      logger.With("module", "auth"),
	}
}

// Signup validates the credentials, rejects an email that is already
// registered (case-insensitively) with common.ErrorAlreadyExists, and stores
// the new user with a hashed password.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	in := signupInput{Email: strings.TrimSpace(email), Password: password}
	if err := s.validator.check(in); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.repomanager.DB())

	_, err := repo.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, s.internal(ctx, "signup lookup failed", err)
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, common.NewValidationError("password", "is too long")
		}
		return nil, s.internal(ctx, "password hash failed", err)
	}

	u, err := repo.Create(ctx, &models.User{Email: in.Email, PasswordHash: digest})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, s.internal(ctx, "create user failed", err)
	}

	s.logger.Info(ctx, "user signed up", "user_id", u.ID)
	return u, nil
}

// Signin returns common.ErrorUnauthorized for an unknown email and for a
// wrong password alike.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*SigninResult, error) {
	in := signinInput{Email: strings.TrimSpace(email), Password: password}
	if err := s.validator.check(in); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.repomanager.DB())

	user, err := repo.GetUserByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn a verify so response time does not reveal the account
			_, _ = s.hasher.Verify(in.Password, s.dummy(ctx))
			return nil, common.ErrorUnauthorized
		}
		return nil, s.internal(ctx, "signin lookup failed", err)
	}

	ok, err := s.hasher.Verify(in.Password, user.PasswordHash)
	if err != nil {
		s.logger.Warn(ctx, "stored password digest unusable", "user_id", user.ID, "error", err)
		return nil, common.ErrorUnauthorized
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	token, claims, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, s.internal(ctx, "token issue failed", err)
	}

	return &SigninResult{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: user}, nil
}

// Profile loads the user a verified token names. common.ErrorNotFound when
// the account is gone.
func (s *AuthService) Profile(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.repomanager.Users(s.repomanager.DB()).GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, s.internal(ctx, "profile lookup failed", err)
	}
	return u, nil
}

// fallbackDigest is a well-formed bcrypt digest (cost 10) that matches no
// password, used when the configured hasher cannot produce a dummy digest.
const fallbackDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// dummy is a digest to verify against when the email is unknown, so that
// path costs the same as a wrong password.
func (s *AuthService) dummy(ctx context.Context) string {
	s.dummyOnce.Do(func() {
		digest, err := s.hasher.Hash("not-a-real-password")
		if err != nil {
			s.logger.Warn(ctx, "dummy digest unavailable, using bcrypt fallback", "error", err)
			digest = fallbackDigest
		}
		s.dummyDigest = digest
	})
	return s.dummyDigest
}

func (s *AuthService) internal(ctx context.Context, msg string, err error) error {
	s.logger.Error(ctx, msg, logging.ErrorAttrs(err)...)
	return common.ErrorInternal
}
