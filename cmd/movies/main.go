package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/movies/bolt"
	"github.com/fwojciec/movies/config"
	movieshttp "github.com/fwojciec/movies/http"
	moviesprom "github.com/fwojciec/movies/prometheus"
	moviesslog "github.com/fwojciec/movies/slog"
	"github.com/fwojciec/movies/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config is loaded from the --config file and environment during Run.
	Config *config.Config

	// SQLite database, opened for server-side commands.
	DB *sqlite.DB

	// Durable snapshot store, opened for client searches.
	Snapshots *bolt.SnapshotStore
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close releases whatever Run opened.
func (m *Main) Close() error {
	var err error
	if m.Snapshots != nil {
		err = m.Snapshots.Close()
	}
	if m.DB != nil {
		if dbErr := m.DB.Close(); dbErr != nil && err == nil {
			err = dbErr
		}
	}
	return err
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("movies"),
		kong.Description("Browse and search a movie catalog."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'movies --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	m.Config = cfg
	deps.Config = cfg

	level, _ := cfg.Log.SlogLevel()
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Metrics = moviesprom.NewMetrics(reg)
	deps.Gatherer = reg

	defer m.Close()

	switch cmd := strings.Fields(kongCtx.Command())[0]; cmd {
	case "serve", "import", "random":
		m.DB = sqlite.NewDB(cfg.DB.Path)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: set MOVIES_DB_PATH or db.path to use a different database")
			return fmt.Errorf("failed to open database at %q: %w", cfg.DB.Path, err)
		}
		svc := moviesprom.NewInstrumentedMovieService(sqlite.NewMovieService(m.DB), deps.Metrics)
		deps.Movies = moviesslog.NewLoggingMovieService(svc, logger)

	case "search", "show":
		serverURL := cfg.Client.ServerURL
		if cmd == "search" && cli.Search.Server != "" {
			serverURL = cli.Search.Server
		}
		if cmd == "show" && cli.Show.Server != "" {
			serverURL = cli.Show.Server
		}
		opts := []movieshttp.ClientOption{movieshttp.WithTimeout(cfg.Client.Timeout)}
		if cfg.Client.RateLimit > 0 {
			opts = append(opts, movieshttp.WithRateLimit(cfg.Client.RateLimit))
		}
		deps.Catalog = moviesslog.NewLoggingCatalog(movieshttp.NewClient(serverURL, opts...), logger)

		if cmd == "search" {
			path := cfg.Client.SnapshotPath
			if cli.Search.Snapshot != "" {
				path = cli.Search.Snapshot
			}
			m.Snapshots = bolt.NewSnapshotStore(path)
			if err := m.Snapshots.Open(); err != nil {
				fmt.Fprintln(stderr, "Hint: set MOVIES_CLIENT_SNAPSHOT_PATH or pass --snapshot")
				return err
			}
			deps.Snapshots = moviesslog.NewLoggingSnapshotStore(m.Snapshots, logger)
		}
	}

	return kongCtx.Run(deps)
}
