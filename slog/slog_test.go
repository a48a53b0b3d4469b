package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/movies"
	"github.com/fwojciec/movies/mock"
	moviesslog "github.com/fwojciec/movies/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDebugLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLoggingMovieService_SearchMovies(t *testing.T) {
	t.Parallel()

	t.Run("logs query with count and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.MovieService{
			SearchMoviesFn: func(ctx context.Context, query string) ([]*movies.Movie, error) {
				return []*movies.Movie{{ID: 1, Title: "The Thing"}}, nil
			},
		}

		svc := moviesslog.NewLoggingMovieService(inner, newDebugLogger(&buf))
		ms, err := svc.SearchMovies(context.Background(), "the thing")

		require.NoError(t, err)
		assert.Len(t, ms, 1)
		output := buf.String()
		assert.Contains(t, output, "search movies")
		assert.Contains(t, output, `query="the thing"`)
		assert.Contains(t, output, "count=1")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.MovieService{
			SearchMoviesFn: func(ctx context.Context, query string) ([]*movies.Movie, error) {
				return nil, errors.New("database locked")
			},
		}

		svc := moviesslog.NewLoggingMovieService(inner, newDebugLogger(&buf))
		_, err := svc.SearchMovies(context.Background(), "alien")

		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="database locked"`)
	})
}

func TestLoggingMovieService_CreateMovie(t *testing.T) {
	t.Parallel()

	t.Run("success is silent", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.MovieService{
			CreateMovieFn: func(ctx context.Context, movie *movies.Movie) error { return nil },
		}

		svc := moviesslog.NewLoggingMovieService(inner, newDebugLogger(&buf))
		require.NoError(t, svc.CreateMovie(context.Background(), &movies.Movie{ID: 1, Title: "Alien"}))
		assert.Empty(t, buf.String())
	})

	t.Run("failure is logged with id", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.MovieService{
			CreateMovieFn: func(ctx context.Context, movie *movies.Movie) error {
				return movies.Errorf(movies.ECONFLICT, "movie %d already exists", movie.ID)
			},
		}

		svc := moviesslog.NewLoggingMovieService(inner, newDebugLogger(&buf))
		err := svc.CreateMovie(context.Background(), &movies.Movie{ID: 7, Title: "Alien"})

		assert.Equal(t, movies.ECONFLICT, movies.ErrorCode(err))
		assert.Contains(t, buf.String(), "id=7")
	})
}

func TestLoggingMovieService_Passthrough(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.MovieService{
		FindMovieByIDFn: func(ctx context.Context, id int) (*movies.Movie, error) {
			return &movies.Movie{ID: id, Title: "Alien"}, nil
		},
		FindMoviesFn: func(ctx context.Context, filter movies.MovieFilter) ([]*movies.Movie, error) {
			return []*movies.Movie{{ID: 1}, {ID: 2}}, nil
		},
		CountMoviesFn: func(ctx context.Context) (int, error) { return 42, nil },
	}
	svc := moviesslog.NewLoggingMovieService(inner, newDebugLogger(&buf))

	m, err := svc.FindMovieByID(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, m.ID)

	ms, err := svc.FindMovies(context.Background(), movies.MovieFilter{SortBy: movies.SortRandom, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, ms, 2)

	n, err := svc.CountMovies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, n)

	output := buf.String()
	assert.Contains(t, output, "find movie")
	assert.Contains(t, output, "sort=random")
	assert.Contains(t, output, "count=2")
}

func TestLoggingCatalog(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	inner := &mock.Catalog{
		SearchMoviesFn: func(ctx context.Context, query string) ([]*movies.Movie, error) {
			return []*movies.Movie{{ID: 1}}, nil
		},
		FetchCatalogFn: func(ctx context.Context) ([]byte, error) {
			return []byte(`[{"id":1,"title":"Alien"}]`), nil
		},
		FindMovieByIDFn: func(ctx context.Context, id int) (*movies.Movie, error) {
			return nil, movies.Errorf(movies.ENOTFOUND, "movie not found")
		},
	}
	c := moviesslog.NewLoggingCatalog(inner, newDebugLogger(&buf))

	_, err := c.SearchMovies(context.Background(), "alien")
	require.NoError(t, err)
	data, err := c.FetchCatalog(context.Background())
	require.NoError(t, err)
	_, err = c.FindMovieByID(context.Background(), 9)
	assert.Equal(t, movies.ENOTFOUND, movies.ErrorCode(err))

	output := buf.String()
	assert.Contains(t, output, "remote search")
	assert.Contains(t, output, "fetch catalog")
	assert.Contains(t, output, "bytes=26")
	assert.Len(t, data, 26)
	assert.Contains(t, output, "remote find movie")
	assert.Contains(t, output, "id=9")
}

func TestLoggingSnapshotStore(t *testing.T) {
	t.Parallel()

	t.Run("reports miss and hit", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		store := moviesslog.NewLoggingSnapshotStore(mock.NewMemorySnapshotStore(), newDebugLogger(&buf))

		_, err := store.GetSnapshot(context.Background(), movies.SnapshotKey)
		assert.Equal(t, movies.ENOTFOUND, movies.ErrorCode(err))
		assert.Contains(t, buf.String(), "hit=false")
		assert.NotContains(t, buf.String(), "err=")

		require.NoError(t, store.PutSnapshot(context.Background(), movies.SnapshotKey, []byte("[]")))
		assert.Contains(t, buf.String(), "snapshot put")

		buf.Reset()
		data, err := store.GetSnapshot(context.Background(), movies.SnapshotKey)
		require.NoError(t, err)
		assert.Equal(t, []byte("[]"), data)
		assert.Contains(t, buf.String(), "hit=true")
	})

	t.Run("logs storage failures", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := &mock.SnapshotStore{
			GetSnapshotFn: func(ctx context.Context, key string) ([]byte, error) {
				return nil, errors.New("disk gone")
			},
		}
		store := moviesslog.NewLoggingSnapshotStore(inner, newDebugLogger(&buf))

		_, err := store.GetSnapshot(context.Background(), movies.SnapshotKey)
		require.Error(t, err)
		assert.Contains(t, buf.String(), `err="disk gone"`)
	})
}

type searcherFunc func(ctx context.Context, query string) ([]*movies.Movie, error)

func (f searcherFunc) Search(ctx context.Context, query string) ([]*movies.Movie, error) {
	return f(ctx, query)
}

func TestLoggingSearcher(t *testing.T) {
	t.Parallel()

	t.Run("includes path when reported", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := searcherFunc(func(ctx context.Context, query string) ([]*movies.Movie, error) {
			return []*movies.Movie{{ID: 1}, {ID: 2}}, nil
		})
		s := moviesslog.NewLoggingSearcher(inner, newDebugLogger(&buf))
		s.PathOf = func(string) string { return "replica" }

		ms, err := s.Search(context.Background(), "ali")

		require.NoError(t, err)
		assert.Len(t, ms, 2)
		output := buf.String()
		assert.Contains(t, output, "query=ali")
		assert.Contains(t, output, "path=replica")
		assert.Contains(t, output, "count=2")
	})

	t.Run("omits path when unknown", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		inner := searcherFunc(func(ctx context.Context, query string) ([]*movies.Movie, error) {
			return []*movies.Movie{}, nil
		})
		s := moviesslog.NewLoggingSearcher(inner, newDebugLogger(&buf))

		_, err := s.Search(context.Background(), "x")

		require.NoError(t, err)
		assert.NotContains(t, buf.String(), "path=")
	})
}
