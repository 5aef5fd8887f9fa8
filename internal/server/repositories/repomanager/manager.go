package repomanager

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX and owns the backend's
// lifecycle. Repositories obtained from DB() run outside a transaction; those
// bound to the handle passed into a WithTx callback run inside it.
type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	WithTx(ctx context.Context, fn dbx.TxFunc) error
	DB() dbx.DBTX
	Users(db dbx.DBTX) users.Repository
	Todos(db dbx.DBTX) todos.Repository
	Ping(ctx context.Context) error
	Close() error
}
