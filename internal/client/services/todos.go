package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/client/client"
	"github.com/dmitrijs2005/todokeeper/internal/client/models"
)

// TodoChange is a partial edit; nil fields keep their current value.
type TodoChange struct {
	Title       *string
	Description *string
	Completed   *bool
}

// TodoService wraps the todo endpoints for the CLI. A list that matches
// nothing is reported as an empty page, not as an error.
type TodoService interface {
	List(ctx context.Context, q models.ListQuery) (*models.TodoPage, error)
	Get(ctx context.Context, id int64) (*models.Todo, error)
	Create(ctx context.Context, title, description string) (*models.Todo, error)
	Edit(ctx context.Context, id int64, change TodoChange) (*models.Todo, error)
	Toggle(ctx context.Context, id int64) (*models.Todo, error)
	Delete(ctx context.Context, id int64) error
}

type todoService struct {
	client client.Client
}

func NewTodoService(c client.Client) TodoService {
	return &todoService{client: c}
}

func (s *todoService) List(ctx context.Context, q models.ListQuery) (*models.TodoPage, error) {
	page, err := s.client.ListTodos(ctx, q)
	if err == nil {
		return page, nil
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Code == "no_results" {
		return &models.TodoPage{Meta: models.Meta{Limit: q.Limit, Offset: q.Offset}}, nil
	}
	return nil, err
}

func (s *todoService) Get(ctx context.Context, id int64) (*models.Todo, error) {
	return s.client.GetTodo(ctx, id)
}

func (s *todoService) Create(ctx context.Context, title, description string) (*models.Todo, error) {
	return s.client.CreateTodo(ctx, title, description)
}

// Edit reads the todo, applies change and sends the full replacement.
func (s *todoService) Edit(ctx context.Context, id int64, change TodoChange) (*models.Todo, error) {
	current, err := s.client.GetTodo(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load todo %d: %w", id, err)
	}

	in := models.TodoInput{
		Title:       current.Title,
		Description: current.Description,
		Completed:   current.Completed,
	}
	if change.Title != nil {
		in.Title = *change.Title
	}
	if change.Description != nil {
		in.Description = *change.Description
	}
	if change.Completed != nil {
		in.Completed = *change.Completed
	}

	return s.client.ReplaceTodo(ctx, id, in)
}

func (s *todoService) Toggle(ctx context.Context, id int64) (*models.Todo, error) {
	return s.client.ToggleTodo(ctx, id)
}

func (s *todoService) Delete(ctx context.Context, id int64) error {
	return s.client.DeleteTodo(ctx, id)
}
