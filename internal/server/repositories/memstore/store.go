// Package memstore is the in-process storage backend: a mutex-guarded set of
// maps shared by the memory implementations of the user and todo
// repositories. Nothing survives a restart.
package memstore

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/todokeeper/internal/server/models"
)

// Data is the state behind a Store. It is only touched inside Read or Write.
type Data struct {
	Users      map[string]*models.User
	Todos      map[int64]*models.Todo
	NextTodoID int64
}

// Store guards Data. Write holds the exclusive lock; WithTx serializes
// transactions against each other but does not roll anything back.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data Data
}

func New() *Store {
	return &Store{data: Data{
		Users: make(map[string]*models.User),
		Todos: make(map[int64]*models.Todo),
	}}
}

// Read runs fn under the shared lock.
func (s *Store) Read(fn func(d *Data)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(&s.data)
}

// Write runs fn under the exclusive lock.
func (s *Store) Write(fn func(d *Data)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
}

// WithTx runs fn while holding the transaction mutex.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}
