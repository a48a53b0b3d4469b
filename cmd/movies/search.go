package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fwojciec/movies"
	moviesprom "github.com/fwojciec/movies/prometheus"
	"github.com/fwojciec/movies/replica"
	moviesslog "github.com/fwojciec/movies/slog"
)

// Run executes the search command. With a query it searches once; otherwise
// each line of stdin is a query. Either way it waits for background
// replication before returning so the snapshot is persisted.
func (c *SearchCmd) Run(deps *Dependencies) error {
	store := replica.NewStore(deps.Catalog, deps.Snapshots)
	store.Logger = deps.Logger
	searcher := replica.NewSearcher(store, deps.Catalog)
	searcher.Logger = deps.Logger
	defer searcher.Wait()

	pathOf := func(q string) string { return string(searcher.Path(q)) }

	logged := moviesslog.NewLoggingSearcher(searcher, deps.Logger)
	logged.PathOf = pathOf
	var s movies.Searcher = logged
	if deps.Metrics != nil {
		instrumented := moviesprom.NewInstrumentedSearcher(logged, deps.Metrics)
		instrumented.PathOf = pathOf
		s = instrumented
	}

	if c.Query != "" {
		ms, err := s.Search(deps.Ctx, c.Query)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
			return err
		}
		printResults(deps.Stdout, c.Query, ms)
		return nil
	}

	return c.interactive(deps, replica.NewSession(s))
}

// interactive treats each stdin line as the next query of a session, like
// keystrokes in a search box. A new line supersedes the search still in
// flight, whose results are never printed. Failed searches are reported
// and the loop continues until stdin ends or the command is interrupted.
func (c *SearchCmd) interactive(deps *Dependencies, session *replica.Session) error {
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(deps.Stdin)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-deps.Ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	var (
		out sync.Mutex
		wg  sync.WaitGroup
	)
	defer wg.Wait()

	for {
		select {
		case <-deps.Ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				wg.Wait()
				// No scan error is sent when the reader stopped on cancellation.
				select {
				case err := <-scanErr:
					return err
				default:
					return nil
				}
			}
			q := strings.TrimSpace(line)
			if q == "" {
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				ms, current, err := session.Search(deps.Ctx, q)
				if !current || deps.Ctx.Err() != nil {
					return
				}
				out.Lock()
				defer out.Unlock()
				if err != nil {
					fmt.Fprintf(deps.Stderr, "error: %s\n", errorMessage(err))
					return
				}
				printResults(deps.Stdout, q, ms)
			}()
		}
	}
}

func printResults(w io.Writer, query string, ms []*movies.Movie) {
	if len(ms) == 0 {
		fmt.Fprintf(w, "No movies match %q\n", query)
		return
	}
	printMovies(w, ms)
}

func printMovies(w io.Writer, ms []*movies.Movie) {
	for _, m := range ms {
		fmt.Fprintf(w, "%d\t%s\n", m.ID, m.Title)
	}
}
