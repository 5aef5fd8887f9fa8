package users

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/memstore"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in a memstore.Store.
type MemoryRepository struct {
	store *memstore.Store
	now   func() time.Time
}

func NewMemoryRepository(s *memstore.Store) *MemoryRepository {
	return &MemoryRepository{store: s, now: time.Now}
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	var err error
	r.store.Write(func(d *memstore.Data) {
		for _, u := range d.Users {
			if strings.EqualFold(u.Email, user.Email) {
				err = common.ErrorAlreadyExists
				return
			}
		}
		user.ID = uuid.NewString()
		user.CreatedAt = r.now().UTC().Truncate(time.Microsecond)
		stored := *user
		d.Users[user.ID] = &stored
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var found *models.User
	r.store.Read(func(d *memstore.Data) {
		for _, u := range d.Users {
			if strings.EqualFold(u.Email, email) {
				c := *u
				found = &c
				return
			}
		}
	})
	if found == nil {
		return nil, common.ErrorNotFound
	}
	return found, nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var found *models.User
	r.store.Read(func(d *memstore.Data) {
		if u, ok := d.Users[id]; ok {
			c := *u
			found = &c
		}
	})
	if found == nil {
		return nil, common.ErrorNotFound
	}
	return found, nil
}
