package services

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/logging"
	"github.com/dmitrijs2005/todokeeper/internal/server/cache"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/todokeeper/internal/server/todoquery"
)

var errMissingOwner = errors.New("todo operation without owner")

// ListResult is one page of todos and the window it covers.
type ListResult struct {
	Items []*models.Todo
	Meta  todoquery.Meta
}

// TodoService runs the owner-scoped todo queries and commands. Every method
// takes the owner from a verified session; a todo of another owner is
// reported as common.ErrorNotFound.
type TodoService struct {
	repomanager repomanager.RepositoryManager
	cache       cache.Cache
	validator   *inputValidator
	logger      logging.Logger
	now         func() time.Time
}

func NewTodoService(m repomanager.RepositoryManager, c cache.Cache, logger logging.Logger) *TodoService {
	if c == nil {
		c = cache.Nop{}
	}
	return &TodoService{
		repomanager: m,
		cache:       c,
		validator:   newInputValidator(),
		logger:      logger.With("module", "todos"),
		now:         time.Now,
	}
}

// timestamp is now in UTC at the precision PostgreSQL stores.
func (s *TodoService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// List counts the filtered set, checks the requested window against it and
// returns the page. An empty set is common.ErrNoResults; an offset past the
// end is a *common.OutOfBoundsError.
func (s *TodoService) List(ctx context.Context, p todoquery.Params) (*ListResult, error) {
	if p.Filter.OwnerID == "" {
		return nil, s.fail(ctx, "list", errMissingOwner)
	}

	repo := s.repomanager.Todos(s.repomanager.DB())

	total, err := repo.Count(ctx, p.Filter)
	if err != nil {
		return nil, s.fail(ctx, "count", err)
	}

	meta, err := p.Window(total)
	if err != nil {
		return nil, err
	}

	items, err := repo.List(ctx, p)
	if err != nil {
		return nil, s.fail(ctx, "list", err)
	}

	return &ListResult{Items: items, Meta: meta}, nil
}

func (s *TodoService) Get(ctx context.Context, ownerID string, id int64) (*models.Todo, error) {
	if ownerID == "" {
		return nil, s.fail(ctx, "get", errMissingOwner)
	}

	t, seen, ok := s.cache.Get(ctx, ownerID, id)
	if ok {
		return t, nil
	}

	t, err := s.repomanager.Todos(s.repomanager.DB()).FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, s.fail(ctx, "get", err)
	}

	// dropped by the cache if a write evicted the key since seen was read
	s.cache.Set(ctx, t, seen)
	return t, nil
}

func (s *TodoService) Create(ctx context.Context, ownerID, title, description string) (*models.Todo, error) {
	if ownerID == "" {
		return nil, s.fail(ctx, "create", errMissingOwner)
	}
	if err := s.validator.check(todoInput{Title: title, Description: description}); err != nil {
		return nil, err
	}

	now := s.timestamp()
	t := &models.Todo{
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repomanager.Todos(s.repomanager.DB()).Create(ctx, t)
	if err != nil {
		return nil, s.fail(ctx, "create", err)
	}
	return created, nil
}

// Replace overwrites title, description and completed of an owned todo.
func (s *TodoService) Replace(ctx context.Context, ownerID string, id int64, title, description string, completed bool) (*models.Todo, error) {
	if err := s.validator.check(todoInput{Title: title, Description: description}); err != nil {
		return nil, err
	}

	return s.mutate(ctx, "replace", ownerID, id, func(t *models.Todo) {
		t.Title = title
		t.Description = description
		t.Completed = completed
	})
}

// Toggle flips completed on an owned todo.
func (s *TodoService) Toggle(ctx context.Context, ownerID string, id int64) (*models.Todo, error) {
	return s.mutate(ctx, "toggle", ownerID, id, func(t *models.Todo) {
		t.Completed = !t.Completed
	})
}

// mutate locks the owned row, applies change and writes it back in one
// transaction.
func (s *TodoService) mutate(ctx context.Context, op, ownerID string, id int64, change func(t *models.Todo)) (*models.Todo, error) {
	if ownerID == "" {
		return nil, s.fail(ctx, op, errMissingOwner)
	}

	var out *models.Todo
	err := s.repomanager.WithTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Todos(tx)

		t, err := repo.LockByIDAndOwner(ctx, id, ownerID)
		if err != nil {
			return err
		}

		change(t)
		t.UpdatedAt = s.timestamp()

		out, err = repo.Update(ctx, t)
		return err
	})

	s.cache.Delete(ctx, ownerID, id)

	if err != nil {
		return nil, s.fail(ctx, op, err)
	}
	return out, nil
}

// Delete removes an owned todo. Deleting it again is common.ErrorNotFound.
func (s *TodoService) Delete(ctx context.Context, ownerID string, id int64) error {
	if ownerID == "" {
		return s.fail(ctx, "delete", errMissingOwner)
	}

	err := s.repomanager.Todos(s.repomanager.DB()).Delete(ctx, id, ownerID)
	s.cache.Delete(ctx, ownerID, id)
	if err != nil {
		return s.fail(ctx, "delete", err)
	}
	return nil
}

// fail keeps common.ErrorNotFound and turns everything else into
// common.ErrorInternal after logging the cause.
func (s *TodoService) fail(ctx context.Context, op string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrorNotFound
	}
	s.logger.Error(ctx, "todo "+op+" failed", logging.ErrorAttrs(err)...)
	return common.ErrorInternal
}
