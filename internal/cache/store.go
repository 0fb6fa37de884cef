// Package cache persists the last successful payload per domain and decides
// when a cached payload is still fresh enough to skip a remote fetch.
package cache

import (
	"context"
	"encoding/json"
	"time"
)

//go:generate mockgen -source=store.go -destination=../mocks/cache/mock_store.go -package=mock_cache Store

// Entry is one cached payload. There is one entry per domain key,
// overwritten in place on every successful fetch.
type Entry struct {
	Key       string          `db:"domain_key" json:"key"`
	Payload   json.RawMessage `db:"payload" json:"payload"`
	FetchedAt time.Time       `db:"fetched_at" json:"fetched_at"`
}

// Store reads and writes cache entries keyed by domain. Read returns
// (nil, nil) on a miss. Entries are never deleted.
type Store interface {
	Read(ctx context.Context, key string) (*Entry, error)
	Write(ctx context.Context, key string, payload []byte, fetchedAt time.Time) error
}
