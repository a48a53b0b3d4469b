// Package slog provides log/slog decorators for the movie domain interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/movies"
)

// Ensure LoggingMovieService implements movies.MovieService.
var _ movies.MovieService = (*LoggingMovieService)(nil)

// LoggingMovieService wraps a MovieService with logging of reads and searches.
type LoggingMovieService struct {
	next   movies.MovieService
	logger *slog.Logger
}

// NewLoggingMovieService creates a new LoggingMovieService.
func NewLoggingMovieService(next movies.MovieService, logger *slog.Logger) *LoggingMovieService {
	return &LoggingMovieService{next: next, logger: logger}
}

// CreateMovie delegates to the wrapped service. Imports create many movies,
// so only failures are logged.
func (s *LoggingMovieService) CreateMovie(ctx context.Context, movie *movies.Movie) error {
	err := s.next.CreateMovie(ctx, movie)
	if err != nil {
		s.logger.Debug("create movie", "id", movie.ID, "err", err)
	}
	return err
}

// FindMovieByID delegates to the wrapped service and logs the lookup.
func (s *LoggingMovieService) FindMovieByID(ctx context.Context, id int) (m *movies.Movie, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find movie",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindMovieByID(ctx, id)
}

// FindMovies delegates to the wrapped service and logs the listing.
func (s *LoggingMovieService) FindMovies(ctx context.Context, filter movies.MovieFilter) (ms []*movies.Movie, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find movies",
			"sort", string(filter.SortBy),
			"limit", filter.Limit,
			"count", len(ms),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindMovies(ctx, filter)
}

// SearchMovies delegates to the wrapped service and logs the query.
func (s *LoggingMovieService) SearchMovies(ctx context.Context, query string) (ms []*movies.Movie, err error) {
	defer func(begin time.Time) {
		s.logger.Info("search movies",
			"query", query,
			"count", len(ms),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SearchMovies(ctx, query)
}

// CountMovies delegates to the wrapped service.
func (s *LoggingMovieService) CountMovies(ctx context.Context) (int, error) {
	return s.next.CountMovies(ctx)
}
