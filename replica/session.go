package replica

import (
	"context"
	"sync"

	"github.com/fwojciec/movies"
)

// Session serializes the results of rapid successive searches, such as one
// per keystroke. Each new search cancels the one in flight, and a search
// that finishes after a newer one has started is reported as stale so its
// results are never shown over fresher ones.
type Session struct {
	searcher movies.Searcher

	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	latest []*movies.Movie
}

// NewSession creates a Session over searcher.
func NewSession(searcher movies.Searcher) *Session {
	return &Session{searcher: searcher}
}

// Search runs query and supersedes any search still in flight. When current
// is false a newer search has started; results and err are then nil and
// the caller should render nothing.
func (s *Session) Search(ctx context.Context, query string) (results []*movies.Movie, current bool, err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	s.seq++
	seq := s.seq
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.mu.Unlock()

	results, err = s.searcher.Search(ctx, query)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.seq {
		return nil, false, nil
	}
	s.cancel = nil
	if err != nil {
		return nil, true, err
	}
	s.latest = results
	return results, true, nil
}

// Latest returns the results of the most recent search that completed
// while it was still current.
func (s *Session) Latest() []*movies.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}
