package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fwojciec/movies"
	"github.com/ncruces/go-sqlite3"
)

// Compile-time interface verification.
var _ movies.MovieService = (*MovieService)(nil)

// MovieService implements movies.MovieService using SQLite.
type MovieService struct {
	db *DB
}

// NewMovieService creates a new MovieService.
func NewMovieService(db *DB) *MovieService {
	return &MovieService{db: db}
}

// CreateMovie adds a movie to the catalog. The insert trigger indexes its
// title and extract in fts_movies.
func (s *MovieService) CreateMovie(ctx context.Context, movie *movies.Movie) error {
	if err := movie.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO movies (id, title, extract, thumbnail, year)
		VALUES (?, ?, ?, ?, ?)
	`, movie.ID, movie.Title, movie.Extract, movie.Thumbnail, nullableYear(movie.Year))

	if errors.Is(err, sqlite3.CONSTRAINT_PRIMARYKEY) {
		return movies.Errorf(movies.ECONFLICT, "movie %d already exists", movie.ID)
	}
	return err
}

// FindMovieByID retrieves a movie by ID.
func (s *MovieService) FindMovieByID(ctx context.Context, id int) (*movies.Movie, error) {
	m, err := scanMovie(s.db.QueryRowContext(ctx, `
		SELECT id, title, extract, thumbnail, year
		FROM movies
		WHERE id = ?
	`, id))

	if err == sql.ErrNoRows {
		return nil, movies.Errorf(movies.ENOTFOUND, "movie not found")
	}
	if err != nil {
		return nil, err
	}

	return m, nil
}

// FindMovies retrieves movies matching the filter.
func (s *MovieService) FindMovies(ctx context.Context, filter movies.MovieFilter) ([]*movies.Movie, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, title, extract, thumbnail, year FROM movies WHERE 1=1")

	if filter.Thumbnail {
		query.WriteString(" AND thumbnail != ''")
	}

	switch filter.SortBy {
	case movies.SortRandom:
		query.WriteString(" ORDER BY RANDOM()")
	default:
		query.WriteString(" ORDER BY id DESC")
	}

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []*movies.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, m)
	}

	return result, rows.Err()
}

// SearchMovies runs an exact-phrase FTS5 query. Whitespace-only input is
// treated as empty.
func (s *MovieService) SearchMovies(ctx context.Context, query string) ([]*movies.Movie, error) {
	if strings.TrimSpace(query) == "" {
		return []*movies.Movie{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, extract FROM movies WHERE id IN (
			SELECT rowid FROM fts_movies WHERE fts_movies MATCH ?
		)
		LIMIT ?
	`, movies.PhraseQuery(query), movies.MatchLimit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []*movies.Movie{}
	for rows.Next() {
		var m movies.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Extract); err != nil {
			return nil, err
		}
		result = append(result, &m)
	}

	return result, rows.Err()
}

// CountMovies returns the number of movies in the catalog.
func (s *MovieService) CountMovies(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies").Scan(&n)
	return n, err
}
