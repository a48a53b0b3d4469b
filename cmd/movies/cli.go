package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/movies"
	"github.com/fwojciec/movies/config"
	moviesprom "github.com/fwojciec/movies/prometheus"
	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *config.Config

	// Metrics is nil when metrics are not wanted.
	Metrics  *moviesprom.Metrics
	Gatherer prometheus.Gatherer

	// Server side.
	Movies movies.MovieService

	// Client side.
	Catalog   movies.Catalog
	Snapshots movies.SnapshotStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `help:"YAML config file (default $MOVIES_CONFIG)" type:"path"`

	Serve  ServeCmd  `cmd:"" help:"Serve the catalog over HTTP"`
	Import ImportCmd `cmd:"" help:"Import movies from a JSON array"`
	Random RandomCmd `cmd:"" help:"Print a random sample of movies with thumbnails"`
	Search SearchCmd `cmd:"" help:"Search a catalog server, replicating it locally"`
	Show   ShowCmd   `cmd:"" help:"Show movie details from a catalog server"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string `help:"Listen address (overrides http.addr)"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	File string `arg:"" help:"JSON file with an array of movies, or - for stdin"`
}

// RandomCmd is the "random" subcommand.
type RandomCmd struct {
	Limit int `short:"n" default:"12" help:"Number of movies to print"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query    string `arg:"" optional:"" help:"Query; reads one query per line from stdin when omitted"`
	Server   string `help:"Catalog server URL (overrides client.server_url)"`
	Snapshot string `help:"Snapshot database path (overrides client.snapshot_path)" type:"path"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	IDs    []string `arg:"" name:"id" help:"Movie IDs"`
	Server string   `help:"Catalog server URL (overrides client.server_url)"`
}
