package cache

import (
	"context"
	"fmt"
	"time"
)

// Freshness reports whether a payload fetched at fetchedAt is still fresh
// at now.
type Freshness func(fetchedAt, now time.Time) bool

// MaxAge keeps a payload fresh for at most d after it was fetched.
func MaxAge(d time.Duration) Freshness {
	return func(fetchedAt, now time.Time) bool {
		return now.Sub(fetchedAt) <= d
	}
}

// SameDay keeps a payload fresh until the calendar day changes in loc.
func SameDay(loc *time.Location) Freshness {
	return func(fetchedAt, now time.Time) bool {
		fy, fm, fd := fetchedAt.In(loc).Date()
		ny, nm, nd := now.In(loc).Date()
		return fy == ny && fm == nm && fd == nd
	}
}

// Never treats every cached payload as stale; the store still records the
// last fetched payload.
func Never() Freshness {
	return func(time.Time, time.Time) bool {
		return false
	}
}

// FetchFunc fetches a payload from the remote API.
type FetchFunc func(ctx context.Context) ([]byte, error)

// Gate serves cached payloads while they are fresh and refreshes them
// through the store otherwise.
type Gate struct {
	store Store
	now   func() time.Time
}

// GateOption configures a Gate.
type GateOption func(*Gate)

// WithClock overrides the gate's clock.
func WithClock(now func() time.Time) GateOption {
	return func(g *Gate) {
		g.now = now
	}
}

// NewGate creates a Gate over store.
func NewGate(store Store, opts ...GateOption) *Gate {
	g := &Gate{
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Do returns the cached payload for key when fresh admits it, otherwise
// calls fetch and writes the result through on success. A fetch error is
// returned as-is; no stale fallback is served. If ctx is already done when
// the fetch returns, the late result is discarded without a cache write.
func (g *Gate) Do(ctx context.Context, key string, fresh Freshness, fetch FetchFunc) ([]byte, error) {
	entry, err := g.store.Read(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("store.Read > %w", err)
	}
	if entry != nil && fresh(entry.FetchedAt, g.now()) {
		return entry.Payload, nil
	}

	payload, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if err := g.store.Write(ctx, key, payload, g.now()); err != nil {
		return nil, fmt.Errorf("store.Write > %w", err)
	}
	return payload, nil
}
