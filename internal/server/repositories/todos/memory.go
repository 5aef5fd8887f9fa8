package todos

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/memstore"
	"github.com/dmitrijs2005/todokeeper/internal/server/todoquery"
)

// MemoryRepository keeps todos in a memstore.Store. Filtering and ordering go
// through todoquery so both backends agree on results.
type MemoryRepository struct {
	store *memstore.Store
}

func NewMemoryRepository(s *memstore.Store) *MemoryRepository {
	return &MemoryRepository{store: s}
}

func (r *MemoryRepository) Count(ctx context.Context, f todoquery.Filter) (int, error) {
	n := 0
	r.store.Read(func(d *memstore.Data) {
		for _, t := range d.Todos {
			if f.Match(t) {
				n++
			}
		}
	})
	return n, nil
}

func (r *MemoryRepository) List(ctx context.Context, p todoquery.Params) ([]*models.Todo, error) {
	var matched []*models.Todo
	r.store.Read(func(d *memstore.Data) {
		for _, t := range d.Todos {
			if p.Filter.Match(t) {
				matched = append(matched, withOwner(d, t))
			}
		}
	})

	p.Sort.Apply(matched)

	if p.Page.Offset >= len(matched) {
		return []*models.Todo{}, nil
	}
	end := min(p.Page.Offset+p.Page.Limit, len(matched))
	return matched[p.Page.Offset:end], nil
}

func (r *MemoryRepository) FindByIDAndOwner(ctx context.Context, id int64, ownerID string) (*models.Todo, error) {
	var found *models.Todo
	r.store.Read(func(d *memstore.Data) {
		if t, ok := d.Todos[id]; ok && t.OwnerID == ownerID {
			found = withOwner(d, t)
		}
	})
	if found == nil {
		return nil, common.ErrorNotFound
	}
	return found, nil
}

// LockByIDAndOwner relies on the caller holding the store's transaction
// mutex; the read itself is the same as FindByIDAndOwner.
func (r *MemoryRepository) LockByIDAndOwner(ctx context.Context, id int64, ownerID string) (*models.Todo, error) {
	return r.FindByIDAndOwner(ctx, id, ownerID)
}

func (r *MemoryRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	r.store.Write(func(d *memstore.Data) {
		d.NextTodoID++
		todo.ID = d.NextTodoID
		stored := *todo
		stored.OwnerEmail = ""
		d.Todos[todo.ID] = &stored
	})
	return todo, nil
}

func (r *MemoryRepository) Update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	var err error
	r.store.Write(func(d *memstore.Data) {
		t, ok := d.Todos[todo.ID]
		if !ok || t.OwnerID != todo.OwnerID {
			err = common.ErrorNotFound
			return
		}
		t.Title = todo.Title
		t.Description = todo.Description
		t.Completed = todo.Completed
		t.UpdatedAt = todo.UpdatedAt
	})
	if err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int64, ownerID string) error {
	var err error
	r.store.Write(func(d *memstore.Data) {
		t, ok := d.Todos[id]
		if !ok || t.OwnerID != ownerID {
			err = common.ErrorNotFound
			return
		}
		delete(d.Todos, id)
	})
	return err
}

// withOwner copies t and joins the owner's email.
func withOwner(d *memstore.Data, t *models.Todo) *models.Todo {
	c := *t
	if u, ok := d.Users[t.OwnerID]; ok {
		c.OwnerEmail = u.Email
	}
	return &c
}
