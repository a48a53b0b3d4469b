package sqlite

import (
	"database/sql"
	"strings"

	"github.com/fwojciec/movies"
)

// appendPagination appends LIMIT and OFFSET clauses to a query builder if values are > 0.
// SQLite requires a LIMIT before OFFSET, so an offset alone uses LIMIT -1.
func appendPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	} else if offset > 0 {
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanMovie reads a full movie row: id, title, extract, thumbnail, year.
func scanMovie(s scanner) (*movies.Movie, error) {
	var m movies.Movie
	var year sql.NullInt64
	if err := s.Scan(&m.ID, &m.Title, &m.Extract, &m.Thumbnail, &year); err != nil {
		return nil, err
	}
	if year.Valid {
		m.Year = int(year.Int64)
	}
	return &m, nil
}

// nullableYear stores a zero year as NULL.
func nullableYear(year int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(year), Valid: year != 0}
}
