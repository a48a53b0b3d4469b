package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/movies"
)

// Ensure LoggingSearcher implements movies.Searcher.
var _ movies.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with logging of each query.
type LoggingSearcher struct {
	next   movies.Searcher
	logger *slog.Logger

	// PathOf optionally reports which path answers a query. It is
	// evaluated before the search runs.
	PathOf func(query string) string
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next movies.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the query.
func (s *LoggingSearcher) Search(ctx context.Context, query string) (ms []*movies.Movie, err error) {
	attrs := []any{"query", query}
	if s.PathOf != nil {
		attrs = append(attrs, "path", s.PathOf(query))
	}
	defer func(begin time.Time) {
		s.logger.Info("search", append(attrs,
			"count", len(ms),
			"duration", time.Since(begin),
			"err", err,
		)...)
	}(time.Now())
	return s.next.Search(ctx, query)
}
