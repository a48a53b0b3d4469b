package prometheus

import (
	"context"

	"github.com/fwojciec/movies"
)

// Ensure InstrumentedSearcher implements movies.Searcher.
var _ movies.Searcher = (*InstrumentedSearcher)(nil)

// InstrumentedSearcher counts client searches by the path that answers
// them. PathOf reports the path before the search runs; without it every
// search is counted as "unknown".
type InstrumentedSearcher struct {
	next    movies.Searcher
	metrics *Metrics

	PathOf func(query string) string
}

// NewInstrumentedSearcher wraps next.
func NewInstrumentedSearcher(next movies.Searcher, m *Metrics) *InstrumentedSearcher {
	return &InstrumentedSearcher{next: next, metrics: m}
}

// Search delegates to the wrapped searcher.
func (s *InstrumentedSearcher) Search(ctx context.Context, query string) ([]*movies.Movie, error) {
	path := "unknown"
	if s.PathOf != nil {
		path = s.PathOf(query)
	}
	s.metrics.clientSearches.WithLabelValues(path).Inc()
	return s.next.Search(ctx, query)
}
