package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// DBStore persists cache entries in the cache_entries MySQL table.
type DBStore struct {
	db *sqlx.DB
}

// NewDBStore creates a DBStore over db.
func NewDBStore(db *sqlx.DB) *DBStore {
	return &DBStore{db: db}
}

// Read returns the cached entry for key, or (nil, nil) when no row exists.
func (s *DBStore) Read(ctx context.Context, key string) (*Entry, error) {
	var entry Entry
	err := s.db.GetContext(ctx, &entry,
		"SELECT domain_key, payload, fetched_at FROM cache_entries WHERE domain_key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(cache_entries) > %w", err)
	}
	return &entry, nil
}

// Write upserts the entry for key.
func (s *DBStore) Write(ctx context.Context, key string, payload []byte, fetchedAt time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cache_entries (domain_key, payload, fetched_at)
		 VALUES (?, ?, ?)
		 ON DUPLICATE KEY UPDATE payload = VALUES(payload), fetched_at = VALUES(fetched_at)`,
		key, payload, fetchedAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(cache_entries) > %w", err)
	}
	return nil
}
