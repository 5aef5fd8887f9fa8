// Package todos persists todo items. Every read and write is scoped to an
// owner: a todo that exists under another owner is reported exactly like a
// todo that does not exist.
package todos

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/todoquery"
)

type Repository interface {
	// Count returns the number of todos matching f.
	Count(ctx context.Context, f todoquery.Filter) (int, error)

	// List returns the window p selects, ordered by p.Sort, with OwnerEmail
	// filled in.
	List(ctx context.Context, p todoquery.Params) ([]*models.Todo, error)

	// FindByIDAndOwner returns common.ErrorNotFound when no todo with id
	// belongs to ownerID.
	FindByIDAndOwner(ctx context.Context, id int64, ownerID string) (*models.Todo, error)

	// LockByIDAndOwner is FindByIDAndOwner that also takes a row lock for the
	// rest of the enclosing transaction.
	LockByIDAndOwner(ctx context.Context, id int64, ownerID string) (*models.Todo, error)

	// Create stores todo and fills in ID.
	Create(ctx context.Context, todo *models.Todo) (*models.Todo, error)

	// Update overwrites title, description, completed and updated_at of the
	// todo identified by todo.ID and todo.OwnerID.
	Update(ctx context.Context, todo *models.Todo) (*models.Todo, error)

	Delete(ctx context.Context, id int64, ownerID string) error
}
