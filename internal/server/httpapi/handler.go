// Package httpapi is the HTTP transport of the server: gin routes, the
// session guard, request middleware and the single error envelope.
package httpapi

import (
	"context"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/observability"
	"github.com/dmitrijs2005/todokeeper/internal/server/services"
	"github.com/dmitrijs2005/todokeeper/internal/server/todoquery"
)

type AuthAPI interface {
	Signup(ctx context.Context, email, password string) (*models.User, error)
	Signin(ctx context.Context, email, password string) (*services.SigninResult, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
}

type TodoAPI interface {
	List(ctx context.Context, p todoquery.Params) (*services.ListResult, error)
	Get(ctx context.Context, ownerID string, id int64) (*models.Todo, error)
	Create(ctx context.Context, ownerID, title, description string) (*models.Todo, error)
	Replace(ctx context.Context, ownerID string, id int64, title, description string, completed bool) (*models.Todo, error)
	Toggle(ctx context.Context, ownerID string, id int64) (*models.Todo, error)
	Delete(ctx context.Context, ownerID string, id int64) error
}

// ReadinessChecker reports whether storage is reachable.
type ReadinessChecker interface {
	Ready() bool
}

type Handler struct {
	auth      AuthAPI
	todos     TodoAPI
	readiness ReadinessChecker
	metrics   *observability.Metrics
	logger    logging.Logger
	now       func() time.Time
}

func NewHandler(a AuthAPI, t TodoAPI, r ReadinessChecker, m *observability.Metrics, logger logging.Logger) *Handler {
	return &Handler{
		auth:      a,
		todos:     t,
		readiness: r,
		metrics:   m,
		logger:    logger.With("module", "http"),
		now:       time.Now,
	}
}
