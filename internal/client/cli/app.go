package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/todokeeper/internal/client/client"
	"github.com/dmitrijs2005/todokeeper/internal/client/config"
	"github.com/dmitrijs2005/todokeeper/internal/client/repositories/session"
	"github.com/dmitrijs2005/todokeeper/internal/client/services"
)

type App struct {
	config      *config.Config
	authService services.AuthService
	todoService services.TodoService
	session     *session.Session
	db          *sql.DB
	reader      *bufio.Reader
	out         io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	apiClient, err := client.NewHTTPClient(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	return &App{
		config:      c,
		authService: services.NewAuthService(apiClient, session.NewSQLiteRepository(db)),
		todoService: services.NewTodoService(apiClient),
		db:          db,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

// Run resumes a stored session if there is one and serves the REPL until
// the user exits or input ends.
func (a *App) Run(ctx context.Context) error {
	defer a.close(ctx)

	s, err := a.authService.Restore(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not restore session:", err)
	}
	a.session = s

	if err := a.authService.Ping(ctx); err != nil {
		fmt.Fprintf(a.out, "Server %s is not reachable: %s\n", a.config.ServerEndpointAddr, describe(err))
	}

	fmt.Fprintln(a.out, "Welcome to todokeeper (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) close(ctx context.Context) {
	_ = a.authService.Close(ctx)
	if a.db != nil {
		_ = a.db.Close()
	}
}

func (a *App) isLoggedIn() bool {
	return a.session != nil
}

func (a *App) getStatus() string {
	if a.session == nil {
		return ""
	}
	return fmt.Sprintf("(%s)", a.session.Email)
}
