package metrics

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	metricsdb "recipe-finder/internal/metrics/db"
)

// APICallMetric records one call made through the recipe API client.
type APICallMetric struct {
	Endpoint   string
	StatusCode int
	CacheHit   bool
	// Failed marks a call that produced no usable result, e.g. a 2xx
	// response whose body did not decode.
	Failed    bool
	LatencyMS int64
	Timestamp time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	queries *metricsdb.Queries
	now     func() time.Time
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{
		queries: metricsdb.New(db),
		now:     time.Now,
	}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m APICallMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = s.now().UTC()
	}

	err := s.queries.InsertAPICallMetric(ctx, metricsdb.InsertAPICallMetricParams{
		Endpoint:   m.Endpoint,
		StatusCode: int64(m.StatusCode),
		CacheHit:   m.CacheHit,
		Failed:     m.Failed,
		LatencyMs:  m.LatencyMS,
		Timestamp:  ts.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("failed to insert api call metric: %w", err)
	}
	return nil
}

// DailyUsage represents call totals for a single UTC day.
type DailyUsage struct {
	Date         string
	Calls        int
	CacheHits    int
	Failures     int
	AvgLatencyMS float64
}

// NetworkCalls is the number of calls that reached the provider.
func (u DailyUsage) NetworkCalls() int {
	return u.Calls - u.CacheHits
}

// GetDailyUsage retrieves usage for the last N days, newest first.
func (s *Store) GetDailyUsage(ctx context.Context, days int) ([]DailyUsage, error) {
	since := s.now().UTC().AddDate(0, 0, -days)
	rows, err := s.queries.GetDailyUsage(ctx, since.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to get daily usage: %w", err)
	}

	var results []DailyUsage
	for _, r := range rows {
		u := DailyUsage{
			Calls: int(r.Calls),
		}

		if day, ok := r.Day.(string); ok {
			u.Date = day
		} else {
			u.Date = "Unknown"
		}

		if r.CacheHits.Valid {
			u.CacheHits = int(r.CacheHits.Float64)
		}
		if r.Failures.Valid {
			u.Failures = int(r.Failures.Float64)
		}
		if r.AvgLatencyMs.Valid {
			u.AvgLatencyMS = r.AvgLatencyMs.Float64
		}

		results = append(results, u)
	}
	return results, nil
}

// Cleanup removes records older than the specified number of days.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := s.now().UTC().AddDate(0, 0, -olderThanDays)
	n, err := s.queries.CleanupAPICallMetrics(ctx, threshold.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to clean up api call metrics: %w", err)
	}
	return n, nil
}
