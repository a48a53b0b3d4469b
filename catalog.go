package movies

import "context"

// SnapshotKey is the durable snapshot key holding the replicated catalog.
const SnapshotKey = "all-movies"

// Catalog is the client's view of a remote movie server.
type Catalog interface {
	// SearchMovies runs a full-text query on the server.
	// An empty query returns no movies without a round-trip.
	SearchMovies(ctx context.Context, query string) ([]*Movie, error)

	// FetchCatalog returns the raw JSON array of every movie, newest first,
	// exactly as served. Callers persist these bytes verbatim.
	FetchCatalog(ctx context.Context) ([]byte, error)

	// FindMovieByID retrieves a single movie.
	// Returns ENOTFOUND if the server has no such movie.
	FindMovieByID(ctx context.Context, id int) (*Movie, error)
}

// SnapshotStore is durable key-value storage that survives process restarts.
type SnapshotStore interface {
	// GetSnapshot returns the bytes stored under key.
	// Returns ENOTFOUND if nothing is stored.
	GetSnapshot(ctx context.Context, key string) ([]byte, error)

	// PutSnapshot stores data under key, replacing any previous value.
	PutSnapshot(ctx context.Context, key string, data []byte) error
}

// Searcher answers free-text queries with at most MatchLimit movies.
type Searcher interface {
	Search(ctx context.Context, query string) ([]*Movie, error)
}
