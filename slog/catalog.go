package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/movies"
)

// Ensure LoggingCatalog implements movies.Catalog.
var _ movies.Catalog = (*LoggingCatalog)(nil)

// LoggingCatalog wraps a Catalog with logging of every round-trip.
type LoggingCatalog struct {
	next   movies.Catalog
	logger *slog.Logger
}

// NewLoggingCatalog creates a new LoggingCatalog.
func NewLoggingCatalog(next movies.Catalog, logger *slog.Logger) *LoggingCatalog {
	return &LoggingCatalog{next: next, logger: logger}
}

// SearchMovies delegates to the wrapped catalog and logs the query.
func (c *LoggingCatalog) SearchMovies(ctx context.Context, query string) (ms []*movies.Movie, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("remote search",
			"query", query,
			"count", len(ms),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.SearchMovies(ctx, query)
}

// FetchCatalog delegates to the wrapped catalog and logs the payload size.
func (c *LoggingCatalog) FetchCatalog(ctx context.Context) (data []byte, err error) {
	defer func(begin time.Time) {
		c.logger.Info("fetch catalog",
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.FetchCatalog(ctx)
}

// FindMovieByID delegates to the wrapped catalog and logs the lookup.
func (c *LoggingCatalog) FindMovieByID(ctx context.Context, id int) (m *movies.Movie, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("remote find movie",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.FindMovieByID(ctx, id)
}
