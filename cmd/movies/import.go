package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/movies"
	json "github.com/goccy/go-json"
)

// Run executes the import command. Movies whose ID already exists are
// skipped; any other failure stops the import.
func (c *ImportCmd) Run(deps *Dependencies) error {
	data, err := c.read(deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	var ms []*movies.Movie
	if err := json.Unmarshal(data, &ms); err != nil {
		err = movies.Errorf(movies.EINVALID, "decode %s: %v", c.File, err)
		fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
		return err
	}

	var inserted, skipped int
	for _, m := range ms {
		if m == nil {
			continue
		}
		err := deps.Movies.CreateMovie(deps.Ctx, m)
		switch {
		case err == nil:
			inserted++
		case movies.ErrorCode(err) == movies.ECONFLICT:
			skipped++
		default:
			fmt.Fprintf(deps.Stderr, "error: movie %d: %s\n", m.ID, errorMessage(err))
			return err
		}
	}

	total, err := deps.Movies.CountMovies(deps.Ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Imported %d movies (%d skipped), %d in catalog\n", inserted, skipped, total)
	return nil
}

func (c *ImportCmd) read(stdin io.Reader) ([]byte, error) {
	if c.File == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(c.File)
}
