package main

import (
	"context"
	"fmt"

	movieshttp "github.com/fwojciec/movies/http"
	moviesprom "github.com/fwojciec/movies/prometheus"
	"golang.org/x/sync/errgroup"
)

// Run executes the serve command. It blocks until deps.Ctx is canceled.
func (c *ServeCmd) Run(deps *Dependencies) error {
	server := movieshttp.NewServer(deps.Movies)
	server.Addr = deps.Config.HTTP.Addr
	if c.Addr != "" {
		server.Addr = c.Addr
	}
	server.Logger = deps.Logger
	server.SearchRateLimit = deps.Config.HTTP.SearchRateLimit
	if deps.Metrics != nil {
		server.Instrument = deps.Metrics.Middleware
		server.Metrics = moviesprom.Handler(deps.Gatherer)
	}

	if err := server.Listen(); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stdout, "Serving movies on %s\n", server.URL())

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(func() error {
		return server.Serve(ctx)
	})
	g.Go(func() error {
		n, err := deps.Movies.CountMovies(ctx)
		if err != nil {
			return fmt.Errorf("count movies: %w", err)
		}
		deps.Logger.Info("catalog loaded", "movies", n)
		<-ctx.Done()
		deps.Logger.Info("shutting down", "cause", context.Cause(ctx))
		return nil
	})
	return g.Wait()
}
