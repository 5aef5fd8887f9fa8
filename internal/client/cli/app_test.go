package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/client/client"
	"github.com/dmitrijs2005/todokeeper/internal/client/config"
	"github.com/dmitrijs2005/todokeeper/internal/client/models"
	"github.com/dmitrijs2005/todokeeper/internal/client/repositories/session"
	"github.com/dmitrijs2005/todokeeper/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuth struct {
	email    string
	password string

	signupErr  error
	signinErr  error
	profile    *models.User
	profileErr error
	restored   *session.Session
	pingErr    error

	loggedOut bool
	closed    bool
}

func (f *fakeAuth) Signup(_ context.Context, email string, password []byte) (*models.User, error) {
	f.email, f.password = email, string(password)
	if f.signupErr != nil {
		return nil, f.signupErr
	}
	return &models.User{ID: "u1", Email: email}, nil
}

func (f *fakeAuth) Signin(_ context.Context, email string, password []byte) (*session.Session, error) {
	f.email, f.password = email, string(password)
	if f.signinErr != nil {
		return nil, f.signinErr
	}
	return &session.Session{Token: "tok", Email: email, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

func (f *fakeAuth) Restore(context.Context) (*session.Session, error) { return f.restored, nil }
func (f *fakeAuth) Profile(context.Context) (*models.User, error)     { return f.profile, f.profileErr }
func (f *fakeAuth) Logout(context.Context) error                      { f.loggedOut = true; return nil }
func (f *fakeAuth) Ping(context.Context) error                        { return f.pingErr }
func (f *fakeAuth) Close(context.Context) error                       { f.closed = true; return nil }

type fakeTodos struct {
	page    *models.TodoPage
	lastQ   models.ListQuery
	todo    *models.Todo
	created models.TodoInput
	change  services.TodoChange
	deleted int64
	err     error
}

func (f *fakeTodos) List(_ context.Context, q models.ListQuery) (*models.TodoPage, error) {
	f.lastQ = q
	return f.page, f.err
}

func (f *fakeTodos) Get(context.Context, int64) (*models.Todo, error) { return f.todo, f.err }

func (f *fakeTodos) Create(_ context.Context, title, description string) (*models.Todo, error) {
	f.created = models.TodoInput{Title: title, Description: description}
	return &models.Todo{ID: 11, Title: title}, f.err
}

func (f *fakeTodos) Edit(_ context.Context, id int64, change services.TodoChange) (*models.Todo, error) {
	f.change = change
	return &models.Todo{ID: id, Title: "edited"}, f.err
}

func (f *fakeTodos) Toggle(_ context.Context, id int64) (*models.Todo, error) {
	return &models.Todo{ID: id, Title: "Walk", Completed: true}, f.err
}

func (f *fakeTodos) Delete(_ context.Context, id int64) error {
	f.deleted = id
	return f.err
}

func newTestApp(input string) (*App, *fakeAuth, *fakeTodos, *bytes.Buffer) {
	fa, ft := &fakeAuth{}, &fakeTodos{}
	var out bytes.Buffer
	cfg := &config.Config{ServerEndpointAddr: "http://todo.test"}
	return &App{config: cfg, authService: fa, todoService: ft, reader: rdr(input), out: &out}, fa, ft, &out
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func TestGetStatus(t *testing.T) {
	a := &App{}
	assert.Equal(t, "", a.getStatus())
	assert.False(t, a.isLoggedIn())

	a.session = &session.Session{Email: "a@x.com"}
	assert.Equal(t, "(a@x.com)", a.getStatus())
	assert.True(t, a.isLoggedIn())
}

func TestSignupThenSignin(t *testing.T) {
	stubPassword(t, "secret1")
	a, fa, _, out := newTestApp("a@x.com\na@x.com\n")
	ctx := context.Background()

	require.NoError(t, a.Signup(ctx))
	assert.Equal(t, "a@x.com", fa.email)
	assert.Equal(t, "secret1", fa.password)
	assert.False(t, a.isLoggedIn(), "signup does not sign in")

	require.NoError(t, a.Signin(ctx))
	assert.True(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Signed in as a@x.com")
}

func TestSignin_Failure(t *testing.T) {
	stubPassword(t, "bad")
	a, fa, _, _ := newTestApp("a@x.com\n")
	fa.signinErr = &client.APIError{Status: 401, Message: "Invalid email or password"}

	err := a.Signin(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.False(t, a.isLoggedIn())
}

func TestProfile_ExpiredSessionSignsOut(t *testing.T) {
	a, fa, _, _ := newTestApp("")
	a.session = &session.Session{Email: "a@x.com"}
	fa.profileErr = &client.APIError{Status: 401, Message: "Invalid or expired token"}

	err := a.Profile(context.Background())
	require.ErrorIs(t, err, client.ErrUnauthorized)
	assert.Nil(t, a.session)
}

func TestProfile_Prints(t *testing.T) {
	a, fa, _, out := newTestApp("")
	fa.profile = &models.User{ID: "u1", Email: "a@x.com"}

	require.NoError(t, a.Profile(context.Background()))
	assert.Contains(t, out.String(), "email:   a@x.com")
}

func TestLogout(t *testing.T) {
	a, fa, _, _ := newTestApp("")
	a.session = &session.Session{Email: "a@x.com"}

	require.NoError(t, a.Logout(context.Background()))
	assert.True(t, fa.loggedOut)
	assert.Nil(t, a.session)
}

func TestList(t *testing.T) {
	a, _, ft, out := newTestApp("")
	ft.page = &models.TodoPage{
		Data: []models.Todo{{ID: 1, Title: "Buy milk"}, {ID: 2, Title: "Walk", Completed: true}},
		Meta: models.Meta{Limit: 2, Offset: 0, Total: 5, HasMore: true},
	}

	require.NoError(t, a.List(context.Background(), []string{"limit=2"}))
	assert.Equal(t, 2, ft.lastQ.Limit)

	text := out.String()
	assert.Contains(t, text, "[ ] 1  Buy milk")
	assert.Contains(t, text, "[x] 2  Walk")
	assert.Contains(t, text, "showing 1-2 of 5 (next: offset=2)")
}

func TestList_EmptyAndBadArgs(t *testing.T) {
	a, _, ft, out := newTestApp("")
	ft.page = &models.TodoPage{}

	require.NoError(t, a.List(context.Background(), nil))
	assert.Contains(t, out.String(), "No todos found")

	require.Error(t, a.List(context.Background(), []string{"colour=red"}))
}

func TestAdd(t *testing.T) {
	a, _, ft, out := newTestApp("Buy milk\n2%\nsemi-skimmed\n\n")

	require.NoError(t, a.Add(context.Background()))
	assert.Equal(t, models.TodoInput{Title: "Buy milk", Description: "2%\nsemi-skimmed"}, ft.created)
	assert.Contains(t, out.String(), "Created todo 11")
}

func TestEdit(t *testing.T) {
	a, _, ft, _ := newTestApp("New title\n-\n\ny\n")
	ft.todo = &models.Todo{ID: 3, Title: "Old", Description: "desc"}

	require.NoError(t, a.Edit(context.Background(), []string{"3"}))
	require.NotNil(t, ft.change.Title)
	assert.Equal(t, "New title", *ft.change.Title)
	require.NotNil(t, ft.change.Description)
	assert.Equal(t, "", *ft.change.Description)
	require.NotNil(t, ft.change.Completed)
	assert.True(t, *ft.change.Completed)
}

func TestEdit_KeepsEverything(t *testing.T) {
	a, _, ft, _ := newTestApp("\n\n\n")
	ft.todo = &models.Todo{ID: 3, Title: "Old"}

	require.NoError(t, a.Edit(context.Background(), []string{"3"}))
	assert.Equal(t, services.TodoChange{}, ft.change)
}

func TestEdit_BadAnswer(t *testing.T) {
	a, _, ft, _ := newTestApp("\n\nmaybe\n")
	ft.todo = &models.Todo{ID: 3, Title: "Old"}

	require.Error(t, a.Edit(context.Background(), []string{"3"}))
}

func TestToggleShowDelete(t *testing.T) {
	a, _, ft, out := newTestApp("")
	ctx := context.Background()
	ft.todo = &models.Todo{ID: 4, Title: "Walk", Description: "the dog"}

	require.NoError(t, a.Show(ctx, []string{"4"}))
	assert.Contains(t, out.String(), "the dog")

	require.NoError(t, a.Toggle(ctx, []string{"4"}))
	assert.Contains(t, out.String(), "[x] 4  Walk")

	require.NoError(t, a.Delete(ctx, []string{"4"}))
	assert.Equal(t, int64(4), ft.deleted)

	require.ErrorIs(t, a.Delete(ctx, nil), errUsage)
}

func TestCommandErrorsPropagate(t *testing.T) {
	a, _, ft, _ := newTestApp("")
	ft.err = &client.APIError{Status: 404, Message: "Todo not found"}

	err := a.Show(context.Background(), []string{"9"})
	require.ErrorIs(t, err, client.ErrNotFound)
}

func TestRun_RestoresSessionAndExits(t *testing.T) {
	silence := capturePrintln(t)
	a, fa, _, out := newTestApp("exit\n")
	fa.restored = &session.Session{Token: "tok", Email: "a@x.com"}
	fa.pingErr = errors.New("refused")

	require.NoError(t, a.Run(context.Background()))
	assert.True(t, a.isLoggedIn())
	assert.True(t, fa.closed)
	assert.Contains(t, out.String(), "Server http://todo.test is not reachable")
	assert.Contains(t, strings.Join(*silence, "\n"), "todo(a@x.com)> ")
}

func TestRun_UnreachableServerWithoutSession(t *testing.T) {
	capturePrintln(t)
	a, fa, _, out := newTestApp("exit\n")
	fa.pingErr = client.ErrUnavailable

	require.NoError(t, a.Run(context.Background()))
	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Server http://todo.test is not reachable")
	assert.Contains(t, out.String(), "Welcome to todokeeper")
}

func TestNewApp_CreatesSessionDatabase(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SessionDBPath = filepath.Join(t.TempDir(), "session.db")

	a, err := NewApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { a.close(context.Background()) })
	assert.False(t, a.isLoggedIn())

	cfg.ServerEndpointAddr = "not a url"
	_, err = NewApp(context.Background(), cfg)
	require.Error(t, err)
}
