package main

import (
	"fmt"

	"github.com/fwojciec/movies"
)

// Run executes the random command.
func (c *RandomCmd) Run(deps *Dependencies) error {
	ms, err := deps.Movies.FindMovies(deps.Ctx, movies.MovieFilter{
		Thumbnail: true,
		SortBy:    movies.SortRandom,
		Limit:     c.Limit,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	if len(ms) == 0 {
		fmt.Fprintln(deps.Stdout, "No movies found. Use 'movies import' to add some.")
		return nil
	}

	printMovies(deps.Stdout, ms)
	return nil
}
