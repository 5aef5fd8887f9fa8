package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/todokeeper/internal/client/client"
	"github.com/dmitrijs2005/todokeeper/internal/client/models"
	"github.com/dmitrijs2005/todokeeper/internal/client/repositories/session"
	"github.com/stretchr/testify/require"
)

func newSessionRepo(t *testing.T) *session.SQLiteRepository {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return session.NewSQLiteRepository(db)
}

// fakeClient records calls and returns canned results.
type fakeClient struct {
	token  string
	closed bool

	signupUser  *models.User
	signupEmail string
	signupErr   error

	signinResp *models.Session
	signinErr  error

	profile    *models.User
	profileErr error

	page    *models.TodoPage
	listErr error
	lastQ   models.ListQuery

	todo     *models.Todo
	getErr   error
	replaced *models.TodoInput
	toggled  int64
	deleted  int64
	cmdErr   error

	pingErr error
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Close() error               { f.closed = true; return nil }
func (f *fakeClient) Ping(context.Context) error { return f.pingErr }
func (f *fakeClient) SetToken(token string)      { f.token = token }
func (f *fakeClient) Profile(context.Context) (*models.User, error) {
	return f.profile, f.profileErr
}

func (f *fakeClient) Signup(_ context.Context, email string, _ []byte) (*models.User, error) {
	f.signupEmail = email
	return f.signupUser, f.signupErr
}

func (f *fakeClient) Signin(context.Context, string, []byte) (*models.Session, error) {
	return f.signinResp, f.signinErr
}

func (f *fakeClient) ListTodos(_ context.Context, q models.ListQuery) (*models.TodoPage, error) {
	f.lastQ = q
	return f.page, f.listErr
}

func (f *fakeClient) GetTodo(context.Context, int64) (*models.Todo, error) {
	return f.todo, f.getErr
}

func (f *fakeClient) CreateTodo(_ context.Context, title, description string) (*models.Todo, error) {
	return &models.Todo{ID: 1, Title: title, Description: description}, f.cmdErr
}

func (f *fakeClient) ReplaceTodo(_ context.Context, id int64, in models.TodoInput) (*models.Todo, error) {
	f.replaced = &in
	return &models.Todo{ID: id, Title: in.Title, Description: in.Description, Completed: in.Completed}, f.cmdErr
}

func (f *fakeClient) ToggleTodo(_ context.Context, id int64) (*models.Todo, error) {
	f.toggled = id
	return &models.Todo{ID: id, Completed: true}, f.cmdErr
}

func (f *fakeClient) DeleteTodo(_ context.Context, id int64) error {
	f.deleted = id
	return f.cmdErr
}
