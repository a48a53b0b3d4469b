package prometheus

import (
	"context"

	"github.com/fwojciec/movies"
)

// Ensure InstrumentedMovieService implements movies.MovieService.
var _ movies.MovieService = (*InstrumentedMovieService)(nil)

// InstrumentedMovieService counts search outcomes of the wrapped service.
type InstrumentedMovieService struct {
	movies.MovieService
	metrics *Metrics
}

// NewInstrumentedMovieService wraps next.
func NewInstrumentedMovieService(next movies.MovieService, m *Metrics) *InstrumentedMovieService {
	return &InstrumentedMovieService{MovieService: next, metrics: m}
}

// SearchMovies delegates to the wrapped service and records the outcome.
func (s *InstrumentedMovieService) SearchMovies(ctx context.Context, query string) ([]*movies.Movie, error) {
	ms, err := s.MovieService.SearchMovies(ctx, query)
	switch {
	case err != nil:
		s.metrics.searches.WithLabelValues(OutcomeError).Inc()
	case len(ms) == 0:
		s.metrics.searches.WithLabelValues(OutcomeEmpty).Inc()
	default:
		s.metrics.searches.WithLabelValues(OutcomeHit).Inc()
	}
	return ms, err
}
