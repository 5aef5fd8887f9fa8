package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/cache"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todokeeper/internal/server/repositories/users"
	"github.com/dmitrijs2005/todokeeper/internal/server/todoquery"
	"github.com/golang-jwt/jwt/v5"
)

var errStorage = errors.New("storage unavailable")

// --- manager fake ---

type fakeManager struct {
	users users.Repository
	todos todos.Repository
	txErr error
	txs   int
}

func (f *fakeManager) RunMigrations(context.Context) error { return nil }
func (f *fakeManager) DB() dbx.DBTX                        { return nil }
func (f *fakeManager) Users(dbx.DBTX) users.Repository     { return f.users }
func (f *fakeManager) Todos(dbx.DBTX) todos.Repository     { return f.todos }
func (f *fakeManager) Ping(context.Context) error          { return nil }
func (f *fakeManager) Close() error                        { return nil }

func (f *fakeManager) WithTx(ctx context.Context, fn dbx.TxFunc) error {
	f.txs++
	if f.txErr != nil {
		return f.txErr
	}
	return fn(ctx, nil)
}

// --- repository fakes ---

type fakeUsersRepo struct {
	getOut    *models.User
	getErr    error
	createErr error
	created   []*models.User
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = "u-new"
	f.created = append(f.created, u)
	return u, nil
}

func (f *fakeUsersRepo) GetUserByEmail(context.Context, string) (*models.User, error) {
	return f.getOut, f.getErr
}

func (f *fakeUsersRepo) GetUserByID(context.Context, string) (*models.User, error) {
	return f.getOut, f.getErr
}

type fakeTodosRepo struct {
	count    int
	countErr error
	items    []*models.Todo
	listErr  error
	one      *models.Todo
	oneErr   error
	finds    int
	writeErr error
}

func (f *fakeTodosRepo) Count(context.Context, todoquery.Filter) (int, error) {
	return f.count, f.countErr
}

func (f *fakeTodosRepo) List(context.Context, todoquery.Params) ([]*models.Todo, error) {
	return f.items, f.listErr
}

func (f *fakeTodosRepo) FindByIDAndOwner(context.Context, int64, string) (*models.Todo, error) {
	f.finds++
	if f.oneErr != nil {
		return nil, f.oneErr
	}
	c := *f.one
	return &c, nil
}

func (f *fakeTodosRepo) LockByIDAndOwner(ctx context.Context, id int64, owner string) (*models.Todo, error) {
	return f.FindByIDAndOwner(ctx, id, owner)
}

func (f *fakeTodosRepo) Create(ctx context.Context, t *models.Todo) (*models.Todo, error) {
	return t, f.writeErr
}

func (f *fakeTodosRepo) Update(ctx context.Context, t *models.Todo) (*models.Todo, error) {
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	return t, nil
}

func (f *fakeTodosRepo) Delete(context.Context, int64, string) error {
	return f.writeErr
}

// --- auth fakes ---

type fakeHasher struct {
	hashErr   error
	verifyOK  bool
	verifyErr error
	verifies  int
	digests   []string
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashErr != nil {
		return "", f.hashErr
	}
	return "hashed:" + pw, nil
}

func (f *fakeHasher) Verify(pw, digest string) (bool, error) {
	f.verifies++
	f.digests = append(f.digests, digest)
	return f.verifyOK, f.verifyErr
}

type fakeIssuer struct{ err error }

func (f fakeIssuer) Issue(userID, email string) (string, *auth.Claims, error) {
	if f.err != nil {
		return "", nil, f.err
	}
	claims := &auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           userID,
		Email:            email,
	}
	return "token-" + userID, claims, nil
}

// --- cache fake ---

type fakeCache struct {
	entries  map[int64]*models.Todo
	versions map[int64]int
	deleted  []int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[int64]*models.Todo{}, versions: map[int64]int{}}
}

func fakeVersion(n int) cache.Version { return cache.NewVersion(strconv.Itoa(n)) }

func (c *fakeCache) Get(_ context.Context, owner string, id int64) (*models.Todo, cache.Version, bool) {
	seen := fakeVersion(c.versions[id])
	t, ok := c.entries[id]
	if !ok || t.OwnerID != owner {
		return nil, seen, false
	}
	return t, seen, true
}
func (c *fakeCache) Set(_ context.Context, t *models.Todo, seen cache.Version) {
	if seen != fakeVersion(c.versions[t.ID]) {
		return
	}
	c.entries[t.ID] = t
}
func (c *fakeCache) Delete(_ context.Context, _ string, id int64) {
	delete(c.entries, id)
	c.versions[id]++
	c.deleted = append(c.deleted, id)
}
func (c *fakeCache) Close() error { return nil }
