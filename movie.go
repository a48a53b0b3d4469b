package movies

import (
	"context"
	"strconv"
)

// Movie represents a single catalog entry. Movies are immutable once
// created; clients only ever hold read-only copies.
type Movie struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Extract   string `json:"extract"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Year      int    `json:"year,omitempty"`
}

// Validate returns an error if the movie contains invalid fields.
func (m *Movie) Validate() error {
	if m.ID <= 0 {
		return Errorf(EINVALID, "movie ID must be positive")
	}
	if m.Title == "" {
		return Errorf(EINVALID, "movie title required")
	}
	return nil
}

// ParseMovieID parses a movie ID from its string form.
// Returns EINVALID if the value is not a positive integer.
func ParseMovieID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, Errorf(EINVALID, "invalid movie ID %q", s)
	}
	return id, nil
}

// MovieService represents a service for managing the movie catalog.
type MovieService interface {
	// CreateMovie adds a movie to the catalog and its full-text index.
	// Returns ECONFLICT if a movie with the same ID exists.
	CreateMovie(ctx context.Context, movie *Movie) error

	// FindMovieByID retrieves a movie by ID.
	// Returns ENOTFOUND if movie does not exist.
	FindMovieByID(ctx context.Context, id int) (*Movie, error)

	// FindMovies retrieves movies matching the filter.
	FindMovies(ctx context.Context, filter MovieFilter) ([]*Movie, error)

	// SearchMovies runs an exact-phrase full-text query over titles and
	// extracts. Returns at most MatchLimit movies without thumbnails.
	// An empty query returns no movies and does not touch storage.
	SearchMovies(ctx context.Context, query string) ([]*Movie, error)

	// CountMovies returns the number of movies in the catalog.
	CountMovies(ctx context.Context) (int, error)
}

// SortOrder represents the sort order for movie listings.
type SortOrder string

// SortOrder constants for MovieFilter.
const (
	// SortNewest lists the most recently added movie first.
	SortNewest SortOrder = "newest"
	SortRandom SortOrder = "random"
)

// MovieFilter represents a filter for FindMovies.
type MovieFilter struct {
	// Thumbnail restricts results to movies that have a thumbnail.
	Thumbnail bool `json:"thumbnail"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	SortBy SortOrder `json:"sortBy"`
}
