package client

import (
	"context"

	"github.com/dmitrijs2005/todokeeper/internal/client/models"
)

// Client is the todokeeper API as seen from the terminal client.
type Client interface {
	Close() error
	Ping(ctx context.Context) error
	SetToken(token string)
	Signup(ctx context.Context, email string, password []byte) (*models.User, error)
	Signin(ctx context.Context, email string, password []byte) (*models.Session, error)
	Profile(ctx context.Context) (*models.User, error)
	ListTodos(ctx context.Context, q models.ListQuery) (*models.TodoPage, error)
	GetTodo(ctx context.Context, id int64) (*models.Todo, error)
	CreateTodo(ctx context.Context, title, description string) (*models.Todo, error)
	ReplaceTodo(ctx context.Context, id int64, in models.TodoInput) (*models.Todo, error)
	ToggleTodo(ctx context.Context, id int64) (*models.Todo, error)
	DeleteTodo(ctx context.Context, id int64) error
}
