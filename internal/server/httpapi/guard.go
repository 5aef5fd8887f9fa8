package httpapi

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/observability"
	"github.com/gin-gonic/gin"
)

const (
	userIDCtxKey = "user_id"
	emailCtxKey  = "user_email"
)

var errMissingToken = errors.New("missing bearer token")

// TokenVerifier checks a session token.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

type identityKey struct{}

// Identity is the verified caller of a request.
type Identity struct {
	UserID string
	Email  string
}

// WithIdentity returns ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity the session guard attached.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok && id.UserID != ""
}

// UserIDFromContext returns the verified user id of the request.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := IdentityFromContext(ctx)
	return id.UserID, ok
}

// bearerToken extracts the token of an "Authorization: Bearer <token>"
// header. The scheme is matched case-insensitively.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, common.BearerScheme) {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// SessionGuard rejects requests without a valid bearer token with 401 and
// attaches the verified identity to the rest.
func SessionGuard(v TokenVerifier, m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader(common.AuthorizationHeaderName))
		if !ok {
			m.AuthFailure("missing_token")
			abortWithError(c, unauthorized("Authorization header required", errMissingToken))
			return
		}

		claims, err := v.Verify(token)
		if err != nil {
			m.AuthFailure("invalid_token")
			abortWithError(c, unauthorized("Invalid or expired token", common.ErrInvalidToken))
			return
		}

		id := Identity{UserID: claims.UserID, Email: claims.Email}
		if id.UserID == "" {
			m.AuthFailure("invalid_token")
			abortWithError(c, unauthorized("Invalid or expired token", common.ErrInvalidToken))
			return
		}

		c.Set(userIDCtxKey, id.UserID)
		c.Set(emailCtxKey, id.Email)
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

// ownerID is the verified user of a guarded request. Handlers mounted behind
// SessionGuard always have one.
func ownerID(c *gin.Context) (string, bool) {
	if id, ok := UserIDFromContext(c.Request.Context()); ok {
		return id, true
	}
	abortWithError(c, unauthorized("Authorization header required", errMissingToken))
	return "", false
}
