package kv

import (
	"context"
	"database/sql"

	"github.com/hpungsan/jot/internal/db"
)

// SQLite stores keys in the kv table created by db.Init.
type SQLite struct {
	db *sql.DB
}

// NewSQLite wraps an initialized database.
func NewSQLite(database *sql.DB) *SQLite {
	return &SQLite{db: database}
}

// Get implements Storage.
func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	return db.GetValue(ctx, s.db, key)
}

// Set implements Storage.
func (s *SQLite) Set(ctx context.Context, key, value string) error {
	return db.PutValue(ctx, s.db, key, value)
}
