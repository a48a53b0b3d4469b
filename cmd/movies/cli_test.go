package main_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/fwojciec/movies"
	main "github.com/fwojciec/movies/cmd/movies"
	"github.com/fwojciec/movies/config"
	"github.com/fwojciec/movies/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// lockedBuffer is a bytes.Buffer safe for a command writing from one
// goroutine while the test reads from another.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.DiscardHandler),
		Config: config.Default(),
	}
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestImportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("inserts new movies and skips duplicates", func(t *testing.T) {
		t.Parallel()

		var created []int
		svc := &mock.MovieService{
			CreateMovieFn: func(ctx context.Context, m *movies.Movie) error {
				if m.ID == 2 {
					return movies.Errorf(movies.ECONFLICT, "movie 2 already exists")
				}
				created = append(created, m.ID)
				return nil
			},
			CountMoviesFn: func(ctx context.Context) (int, error) { return 3, nil },
		}
		file := writeFile(t, "movies.json", `[
			{"id":1,"title":"Alien","extract":"A space horror film."},
			{"id":2,"title":"Alibi","extract":"A drama."},
			{"id":3,"title":"Dune","thumbnail":"https://example.com/dune.jpg","year":2021}
		]`)

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Movies = svc

		err := (&main.ImportCmd{File: file}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []int{1, 3}, created)
		assert.Equal(t, "Imported 2 movies (1 skipped), 3 in catalog\n", stdout.String())
		assert.Empty(t, stderr.String())
	})

	t.Run("reads stdin for dash", func(t *testing.T) {
		t.Parallel()

		svc := &mock.MovieService{
			CreateMovieFn: func(ctx context.Context, m *movies.Movie) error { return nil },
			CountMoviesFn: func(ctx context.Context) (int, error) { return 1, nil },
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Movies = svc
		deps.Stdin = bytes.NewBufferString(`[{"id":1,"title":"Alien"}]`)

		err := (&main.ImportCmd{File: "-"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Imported 1 movies")
	})

	t.Run("stops on other errors", func(t *testing.T) {
		t.Parallel()

		calls := 0
		svc := &mock.MovieService{
			CreateMovieFn: func(ctx context.Context, m *movies.Movie) error {
				calls++
				return movies.Errorf(movies.EINVALID, "movie title required")
			},
		}
		file := writeFile(t, "movies.json", `[{"id":1},{"id":2}]`)

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Movies = svc

		err := (&main.ImportCmd{File: file}).Run(deps)

		assert.Equal(t, movies.EINVALID, movies.ErrorCode(err))
		assert.Equal(t, 1, calls)
		assert.Contains(t, stderr.String(), "movie 1: movie title required")
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		file := writeFile(t, "movies.json", `{"id":1}`)

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Movies = &mock.MovieService{}

		err := (&main.ImportCmd{File: file}).Run(deps)

		assert.Equal(t, movies.EINVALID, movies.ErrorCode(err))
	})

	t.Run("reports missing file", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Movies = &mock.MovieService{}

		err := (&main.ImportCmd{File: filepath.Join(t.TempDir(), "missing.json")}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error:")
	})
}

func TestRandomCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints a random sample with thumbnails", func(t *testing.T) {
		t.Parallel()

		var got movies.MovieFilter
		svc := &mock.MovieService{
			FindMoviesFn: func(ctx context.Context, filter movies.MovieFilter) ([]*movies.Movie, error) {
				got = filter
				return []*movies.Movie{{ID: 3, Title: "Dune"}, {ID: 1, Title: "Alien"}}, nil
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Movies = svc

		err := (&main.RandomCmd{Limit: 5}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, movies.MovieFilter{Thumbnail: true, SortBy: movies.SortRandom, Limit: 5}, got)
		assert.Equal(t, "3\tDune\n1\tAlien\n", stdout.String())
	})

	t.Run("shows hint for empty catalog", func(t *testing.T) {
		t.Parallel()

		svc := &mock.MovieService{
			FindMoviesFn: func(ctx context.Context, filter movies.MovieFilter) ([]*movies.Movie, error) {
				return []*movies.Movie{}, nil
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Movies = svc

		require.NoError(t, (&main.RandomCmd{Limit: 12}).Run(deps))
		assert.Contains(t, stdout.String(), "movies import")
	})

	t.Run("returns service errors", func(t *testing.T) {
		t.Parallel()

		svc := &mock.MovieService{
			FindMoviesFn: func(ctx context.Context, filter movies.MovieFilter) ([]*movies.Movie, error) {
				return nil, errors.New("disk I/O error")
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Movies = svc

		err := (&main.RandomCmd{Limit: 12}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "Internal error")
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints details and caches repeats", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		catalog := &mock.Catalog{
			FindMovieByIDFn: func(ctx context.Context, id int) (*movies.Movie, error) {
				calls.Add(1)
				return &movies.Movie{
					ID:        id,
					Title:     "Alien",
					Extract:   "A space horror film.",
					Thumbnail: "https://example.com/alien.jpg",
					Year:      1979,
				}, nil
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Catalog = catalog

		err := (&main.ShowCmd{IDs: []string{"1", "1"}}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, int32(1), calls.Load())
		assert.Contains(t, stdout.String(), "Alien (1979)\nhttps://example.com/alien.jpg\n\nA space horror film.\n")
	})

	t.Run("reports missing movie and fails", func(t *testing.T) {
		t.Parallel()

		catalog := &mock.Catalog{
			FindMovieByIDFn: func(ctx context.Context, id int) (*movies.Movie, error) {
				if id == 1 {
					return &movies.Movie{ID: 1, Title: "Alien"}, nil
				}
				return nil, movies.Errorf(movies.ENOTFOUND, "movie %d not found", id)
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Catalog = catalog

		err := (&main.ShowCmd{IDs: []string{"9", "1"}}).Run(deps)

		assert.Equal(t, movies.ENOTFOUND, movies.ErrorCode(err))
		assert.Equal(t, "movie 9 not found\n", stderr.String())
		assert.Equal(t, "Alien\n", stdout.String(), "later IDs are still shown")
	})

	t.Run("rejects invalid id without a request", func(t *testing.T) {
		t.Parallel()

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Catalog = &mock.Catalog{}

		err := (&main.ShowCmd{IDs: []string{"abc"}}).Run(deps)

		assert.Equal(t, movies.EINVALID, movies.ErrorCode(err))
		assert.Contains(t, stderr.String(), `invalid movie ID "abc"`)
	})

	t.Run("network failure stops at once", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		catalog := &mock.Catalog{
			FindMovieByIDFn: func(ctx context.Context, id int) (*movies.Movie, error) {
				calls.Add(1)
				return nil, movies.Errorf(movies.ENETWORK, "HTTP 502 for /movie/%d", id)
			},
		}

		stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
		deps := newDeps(stdout, stderr)
		deps.Catalog = catalog

		err := (&main.ShowCmd{IDs: []string{"1", "2"}}).Run(deps)

		assert.Equal(t, movies.ENETWORK, movies.ErrorCode(err))
		assert.Equal(t, int32(1), calls.Load())
	})
}
