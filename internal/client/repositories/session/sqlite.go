package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/dbx"
)

const (
	keyToken     = "token"
	keyUserID    = "user_id"
	keyEmail     = "email"
	keyExpiresAt = "expires_at"
)

// SQLiteRepository keeps the session as rows of the metadata key/value table.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Load(ctx context.Context) (*Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value FROM metadata WHERE key IN (?, ?, ?, ?)`,
		keyToken, keyUserID, keyEmail, keyExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string, 4)
	for rows.Next() {
		var key string
		var value []byte
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan session row: %w", err)
		}
		values[key] = string(value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate session rows: %w", err)
	}

	if values[keyToken] == "" {
		return nil, nil
	}

	s := &Session{Token: values[keyToken], UserID: values[keyUserID], Email: values[keyEmail]}
	if v := values[keyExpiresAt]; v != "" {
		if s.ExpiresAt, err = time.Parse(time.RFC3339, v); err != nil {
			return nil, fmt.Errorf("failed to parse session expiry %q: %w", v, err)
		}
	}
	return s, nil
}

// Save replaces the stored session atomically.
func (r *SQLiteRepository) Save(ctx context.Context, s *Session) error {
	values := map[string]string{
		keyToken:  s.Token,
		keyUserID: s.UserID,
		keyEmail:  s.Email,
	}
	if !s.ExpiresAt.IsZero() {
		values[keyExpiresAt] = s.ExpiresAt.UTC().Format(time.RFC3339)
	}

	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := clearSession(ctx, tx); err != nil {
			return err
		}
		for k, v := range values {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO metadata (key, value) VALUES (?, ?)
				ON CONFLICT(key) DO UPDATE SET value = excluded.value
			`, k, []byte(v)); err != nil {
				return fmt.Errorf("failed to save session[%s]: %w", k, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	return clearSession(ctx, r.db)
}

func clearSession(ctx context.Context, db dbx.DBTX) error {
	if _, err := db.ExecContext(ctx,
		`DELETE FROM metadata WHERE key IN (?, ?, ?, ?)`,
		keyToken, keyUserID, keyEmail, keyExpiresAt); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
