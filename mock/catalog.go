package mock

import (
	"context"

	"github.com/fwojciec/movies"
)

var _ movies.Catalog = (*Catalog)(nil)

// Catalog is a mock implementation of movies.Catalog.
type Catalog struct {
	SearchMoviesFn  func(ctx context.Context, query string) ([]*movies.Movie, error)
	FetchCatalogFn  func(ctx context.Context) ([]byte, error)
	FindMovieByIDFn func(ctx context.Context, id int) (*movies.Movie, error)
}

func (c *Catalog) SearchMovies(ctx context.Context, query string) ([]*movies.Movie, error) {
	return c.SearchMoviesFn(ctx, query)
}

func (c *Catalog) FetchCatalog(ctx context.Context) ([]byte, error) {
	return c.FetchCatalogFn(ctx)
}

func (c *Catalog) FindMovieByID(ctx context.Context, id int) (*movies.Movie, error) {
	return c.FindMovieByIDFn(ctx, id)
}
