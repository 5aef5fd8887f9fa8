package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/dbx"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/dmitrijs2005/todokeeper/internal/server/todoquery"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/samber/oops"
)

const selectColumns = `t.id, t.user_id, u.email, t.title, t.description, t.completed, t.created_at, t.updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// where renders the filter as a WHERE clause with positional arguments.
func where(f todoquery.Filter) (string, []any) {
	conds := []string{"t.user_id = $1"}
	args := []any{f.OwnerID}

	if f.Completed != nil {
		args = append(args, *f.Completed)
		conds = append(conds, fmt.Sprintf("t.completed = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, f.LikePattern())
		conds = append(conds, fmt.Sprintf("t.title ILIKE $%d", len(args)))
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

func (r *PostgresRepository) Count(ctx context.Context, f todoquery.Filter) (int, error) {
	clause, args := where(f)
	query := "SELECT COUNT(*) FROM todos t " + clause

	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		if pgCode(err) == pgerrcode.InvalidTextRepresentation {
			return 0, nil
		}
		return 0, dbError("count todos", err)
	}
	return n, nil
}

func (r *PostgresRepository) List(ctx context.Context, p todoquery.Params) ([]*models.Todo, error) {
	clause, args := where(p.Filter)
	args = append(args, p.Page.Limit, p.Page.Offset)

	query := fmt.Sprintf(
		`SELECT %s FROM todos t JOIN users u ON u.id = t.user_id %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		selectColumns, clause, p.Sort.OrderBy(), len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, dbError("list todos", err)
	}
	defer rows.Close()

	items := make([]*models.Todo, 0, p.Page.Limit)
	for rows.Next() {
		t := &models.Todo{}
		if err := scan(rows, t); err != nil {
			return nil, dbError("scan todo", err)
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("list todos", err)
	}

	return items, nil
}

func (r *PostgresRepository) FindByIDAndOwner(ctx context.Context, id int64, ownerID string) (*models.Todo, error) {
	return r.findOne(ctx, "find todo", id, ownerID, "")
}

func (r *PostgresRepository) LockByIDAndOwner(ctx context.Context, id int64, ownerID string) (*models.Todo, error) {
	return r.findOne(ctx, "lock todo", id, ownerID, " FOR UPDATE OF t")
}

func (r *PostgresRepository) findOne(ctx context.Context, op string, id int64, ownerID, suffix string) (*models.Todo, error) {
	query := `SELECT ` + selectColumns + ` FROM todos t JOIN users u ON u.id = t.user_id
		 WHERE t.id = $1 AND t.user_id = $2` + suffix

	t := &models.Todo{}
	if err := scan(r.db.QueryRowContext(ctx, query, id, ownerID), t); err != nil {
		if errors.Is(err, sql.ErrNoRows) || pgCode(err) == pgerrcode.InvalidTextRepresentation {
			return nil, common.ErrorNotFound
		}
		return nil, oops.Code("DB_ERROR").With("table", "todos").With("operation", op).With("todo_id", id).Wrap(err)
	}
	return t, nil
}

func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query :=
		`INSERT INTO todos (user_id, title, description, completed, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		todo.OwnerID, todo.Title, todo.Description, todo.Completed, todo.CreatedAt, todo.UpdatedAt,
	).Scan(&todo.ID)
	if err != nil {
		return nil, dbError("create todo", err)
	}
	return todo, nil
}

func (r *PostgresRepository) Update(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	query :=
		`UPDATE todos SET title = $1, description = $2, completed = $3, updated_at = $4
		 WHERE id = $5 AND user_id = $6`

	res, err := r.db.ExecContext(ctx, query,
		todo.Title, todo.Description, todo.Completed, todo.UpdatedAt, todo.ID, todo.OwnerID)
	if err != nil {
		return nil, dbError("update todo", err)
	}
	if err := dbx.ExpectOneRow(res, common.ErrorNotFound); err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64, ownerID string) error {
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		if pgCode(err) == pgerrcode.InvalidTextRepresentation {
			return common.ErrorNotFound
		}
		return dbError("delete todo", err)
	}
	return dbx.ExpectOneRow(res, common.ErrorNotFound)
}

type scanner interface {
	Scan(dest ...any) error
}

func scan(s scanner, t *models.Todo) error {
	return s.Scan(&t.ID, &t.OwnerID, &t.OwnerEmail, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func dbError(op string, err error) error {
	return oops.Code("DB_ERROR").With("table", "todos").With("operation", op).Wrap(err)
}
