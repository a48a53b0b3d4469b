package mock

import (
	"context"

	"github.com/fwojciec/movies"
)

var _ movies.MovieService = (*MovieService)(nil)

// MovieService is a mock implementation of movies.MovieService.
type MovieService struct {
	CreateMovieFn   func(ctx context.Context, movie *movies.Movie) error
	FindMovieByIDFn func(ctx context.Context, id int) (*movies.Movie, error)
	FindMoviesFn    func(ctx context.Context, filter movies.MovieFilter) ([]*movies.Movie, error)
	SearchMoviesFn  func(ctx context.Context, query string) ([]*movies.Movie, error)
	CountMoviesFn   func(ctx context.Context) (int, error)
}

func (s *MovieService) CreateMovie(ctx context.Context, movie *movies.Movie) error {
	return s.CreateMovieFn(ctx, movie)
}

func (s *MovieService) FindMovieByID(ctx context.Context, id int) (*movies.Movie, error) {
	return s.FindMovieByIDFn(ctx, id)
}

func (s *MovieService) FindMovies(ctx context.Context, filter movies.MovieFilter) ([]*movies.Movie, error) {
	return s.FindMoviesFn(ctx, filter)
}

func (s *MovieService) SearchMovies(ctx context.Context, query string) ([]*movies.Movie, error) {
	return s.SearchMoviesFn(ctx, query)
}

func (s *MovieService) CountMovies(ctx context.Context) (int, error) {
	return s.CountMoviesFn(ctx)
}
