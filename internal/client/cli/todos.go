package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/client/models"
	"github.com/dmitrijs2005/todokeeper/internal/client/services"
)

var getMultiline = GetMultiline

func (a *App) List(ctx context.Context, args []string) error {
	q, err := parseListArgs(args)
	if err != nil {
		return err
	}

	page, err := a.todoService.List(ctx, q)
	if err != nil {
		return err
	}

	if len(page.Data) == 0 {
		fmt.Fprintln(a.out, "No todos found")
		return nil
	}
	for i := range page.Data {
		fmt.Fprintln(a.out, page.Data[i].String())
	}

	m := page.Meta
	fmt.Fprintf(a.out, "showing %d-%d of %d", m.Offset+1, m.Offset+len(page.Data), m.Total)
	if m.HasMore {
		fmt.Fprintf(a.out, " (next: offset=%d)", m.Offset+len(page.Data))
	}
	fmt.Fprintln(a.out)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID("show", args)
	if err != nil {
		return err
	}

	t, err := a.todoService.Get(ctx, id)
	if err != nil {
		return err
	}

	a.printTodo(t)
	return nil
}

func (a *App) printTodo(t *models.Todo) {
	fmt.Fprintln(a.out, t.String())
	if t.Description != "" {
		fmt.Fprintln(a.out, "  "+strings.ReplaceAll(t.Description, "\n", "\n  "))
	}
	fmt.Fprintf(a.out, "  created %s, updated %s\n",
		t.CreatedAt.Local().Format("2006-01-02 15:04"), t.UpdatedAt.Local().Format("2006-01-02 15:04"))
}

func (a *App) Add(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	description, err := getMultiline(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}

	t, err := a.todoService.Create(ctx, title, description)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created todo %d\n", t.ID)
	return nil
}

// Edit prompts for each field; an empty answer keeps the current value and
// "-" clears the description.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID("edit", args)
	if err != nil {
		return err
	}

	current, err := a.todoService.Get(ctx, id)
	if err != nil {
		return err
	}
	a.printTodo(current)

	var change services.TodoChange

	title, err := getSimpleText(a.reader, "New title (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	if title != "" {
		change.Title = &title
	}

	description, err := getMultiline(a.reader, "New description (empty keeps current, - clears)", a.out)
	if err != nil {
		return err
	}
	switch description {
	case "":
	case "-":
		empty := ""
		change.Description = &empty
	default:
		change.Description = &description
	}

	completed, err := getSimpleText(a.reader, "Completed? y/n (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	switch strings.ToLower(completed) {
	case "":
	case "y", "yes":
		yes := true
		change.Completed = &yes
	case "n", "no":
		no := false
		change.Completed = &no
	default:
		return fmt.Errorf("answer y or n, got %q", completed)
	}

	t, err := a.todoService.Edit(ctx, id, change)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Updated:", t.String())
	return nil
}

func (a *App) Toggle(ctx context.Context, args []string) error {
	id, err := parseID("toggle", args)
	if err != nil {
		return err
	}

	t, err := a.todoService.Toggle(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, t.String())
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID("delete", args)
	if err != nil {
		return err
	}

	if err := a.todoService.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted todo %d\n", id)
	return nil
}
