package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	cachedb "recipe-finder/internal/cache/db"
)

// SQLStore keeps cached responses in the api_cache table.
type SQLStore struct {
	queries *cachedb.Queries
	now     func() time.Time
}

// NewSQLStore creates a new SQLStore.
func NewSQLStore(d *sql.DB) *SQLStore {
	return &SQLStore{
		queries: cachedb.New(d),
		now:     time.Now,
	}
}

// WithClock returns a copy of the store that reads time from now.
func (s *SQLStore) WithClock(now func() time.Time) *SQLStore {
	return &SQLStore{
		queries: s.queries,
		now:     now,
	}
}

// Get returns the body stored under key while it is still fresh.
func (s *SQLStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	row, err := s.queries.GetCachedResponse(ctx, Key(key))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get cached response: %w", err)
	}

	if s.now().UnixMilli() >= row.ExpiresAt {
		return nil, false, nil
	}
	return row.Body, true, nil
}

// Set stores body under key until now+ttl, replacing any previous entry.
func (s *SQLStore) Set(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	err := s.queries.UpsertCachedResponse(ctx, cachedb.UpsertCachedResponseParams{
		Key:       Key(key),
		Body:      body,
		ExpiresAt: s.now().Add(ttl).UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to store cached response: %w", err)
	}
	return nil
}

// Purge deletes expired entries and returns how many were removed.
func (s *SQLStore) Purge(ctx context.Context) (int64, error) {
	n, err := s.queries.DeleteExpiredResponses(ctx, s.now().UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired responses: %w", err)
	}
	return n, nil
}
