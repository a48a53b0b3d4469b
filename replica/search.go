package replica

import (
	"context"
	"log/slog"
	"sync"

	"github.com/fwojciec/movies"
)

// Path identifies where a query is answered.
type Path string

// Search paths.
const (
	PathNone    Path = "none"
	PathReplica Path = "replica"
	PathRemote  Path = "remote"
)

// Compile-time interface verification.
var _ movies.Searcher = (*Searcher)(nil)

// Searcher answers queries from the local replica once it is ready and
// from the server until then. The first query that finds the replica empty
// also starts populating it in the background.
type Searcher struct {
	store  *Store
	remote movies.Catalog

	// Logger receives population failures, which are never returned to
	// callers.
	Logger *slog.Logger

	wg sync.WaitGroup
}

// NewSearcher creates a Searcher over store, falling back to remote.
func NewSearcher(store *Store, remote movies.Catalog) *Searcher {
	return &Searcher{
		store:  store,
		remote: remote,
		Logger: slog.New(slog.DiscardHandler),
	}
}

// Search returns up to movies.MatchLimit movies matching query.
// An empty query returns no movies and has no side effects.
func (s *Searcher) Search(ctx context.Context, query string) ([]*movies.Movie, error) {
	switch s.Path(query) {
	case PathNone:
		return []*movies.Movie{}, nil
	case PathReplica:
		return movies.Match(query, s.store.Get()), nil
	}

	if s.store.Status() == StatusEmpty {
		s.replicate(ctx)
	}
	return s.remote.SearchMovies(ctx, query)
}

// Path reports which path Search would take for query right now.
func (s *Searcher) Path(query string) Path {
	switch {
	case query == "":
		return PathNone
	case s.store.Status() == StatusReady:
		return PathReplica
	default:
		return PathRemote
	}
}

// Wait blocks until every background population started by Search has
// finished.
func (s *Searcher) Wait() {
	s.wg.Wait()
}

// replicate populates the store in the background. The population outlives
// the query that triggered it, so it ignores the query's cancellation.
func (s *Searcher) replicate(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.store.Populate(ctx); err != nil {
			s.Logger.Warn("replica population failed", "err", err)
		}
	}()
}
