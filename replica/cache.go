package replica

import (
	"context"
	"strconv"
	"sync"

	"github.com/fwojciec/movies"
)

// Compile-time interface verification.
var _ movies.Catalog = (*MovieCache)(nil)

// MovieCache remembers movie details for the life of the process, keyed
// "movie-<id>". Searches and catalog fetches pass straight through.
type MovieCache struct {
	movies.Catalog

	mu      sync.RWMutex
	entries map[string]movies.Movie
}

// NewMovieCache creates an empty MovieCache in front of remote.
func NewMovieCache(remote movies.Catalog) *MovieCache {
	return &MovieCache{
		Catalog: remote,
		entries: make(map[string]movies.Movie),
	}
}

// FindMovieByID returns the cached movie or fetches and caches it.
// ENOTFOUND is returned as-is and never cached.
func (c *MovieCache) FindMovieByID(ctx context.Context, id int) (*movies.Movie, error) {
	key := movieKey(id)

	c.mu.RLock()
	m, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return &m, nil
	}

	fetched, err := c.Catalog.FindMovieByID(ctx, id)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = *fetched
	c.mu.Unlock()

	return fetched, nil
}

// Cached reports whether the movie is already cached, so callers can skip
// prefetching it.
func (c *MovieCache) Cached(id int) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[movieKey(id)]
	return ok
}

func movieKey(id int) string {
	return "movie-" + strconv.Itoa(id)
}
