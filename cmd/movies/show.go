package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/movies"
	"github.com/fwojciec/movies/replica"
)

// Run executes the show command. Repeated IDs are served from the cache.
// Missing movies are reported and make the command fail once every ID has
// been tried.
func (c *ShowCmd) Run(deps *Dependencies) error {
	cache := replica.NewMovieCache(deps.Catalog)

	var errs []error
	for _, arg := range c.IDs {
		id, err := movies.ParseMovieID(arg)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
			errs = append(errs, err)
			continue
		}

		if cache.Cached(id) {
			deps.Logger.Debug("movie cached", "id", id)
		}
		m, err := cache.FindMovieByID(deps.Ctx, id)
		if movies.ErrorCode(err) == movies.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "movie %d not found\n", id)
			errs = append(errs, err)
			continue
		} else if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
			return err
		}

		printMovie(deps.Stdout, m)
	}
	return errors.Join(errs...)
}

func printMovie(w io.Writer, m *movies.Movie) {
	if m.Year > 0 {
		fmt.Fprintf(w, "%s (%d)\n", m.Title, m.Year)
	} else {
		fmt.Fprintln(w, m.Title)
	}
	if m.Thumbnail != "" {
		fmt.Fprintln(w, m.Thumbnail)
	}
	if m.Extract != "" {
		fmt.Fprintf(w, "\n%s\n", m.Extract)
	}
}
