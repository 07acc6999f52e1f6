package db

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"github.com/hpungsan/jot/internal/errors"
)

// GetValue returns the value stored under key.
// ok is false when the key has never been written.
func GetValue(ctx context.Context, db *sql.DB, key string) (value string, ok bool, err error) {
	row := db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, errors.NewInternal(err)
	}
	return value, true, nil
}

// PutValue inserts or overwrites the value stored under key.
func PutValue(ctx context.Context, db *sql.DB, key, value string) error {
	query := `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`
	if _, err := db.ExecContext(ctx, query, key, value, time.Now().Unix()); err != nil {
		return errors.NewInternal(err)
	}
	return nil
}
