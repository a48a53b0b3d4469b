package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/movies"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// DefaultShutdownTimeout bounds graceful shutdown in Serve.
const DefaultShutdownTimeout = 10 * time.Second

// IndexSampleSize is the number of random movies listed on the index page.
const IndexSampleSize = 12

// CatalogMaxAge is how long clients may cache /all-movies.json. The catalog
// is append-only and changes slowly.
const CatalogMaxAge = 24 * time.Hour

// Server serves the movie catalog over HTTP.
// Set the exported fields before calling Handler or Serve.
type Server struct {
	// Addr is the TCP address to listen on, e.g. ":8787".
	Addr string

	MovieService movies.MovieService
	Logger       *slog.Logger

	// SearchRateLimit is the number of /search requests allowed per client
	// IP per minute. Zero disables the limit.
	SearchRateLimit int

	// Instrument, if set, wraps every routed request. It runs inside the
	// router so the matched route pattern is available.
	Instrument func(http.Handler) http.Handler

	// Metrics, if set, is mounted at /metrics.
	Metrics http.Handler

	ln net.Listener
}

// NewServer returns a Server with defaults.
func NewServer(svc movies.MovieService) *Server {
	return &Server{
		Addr:         ":8787",
		MovieService: svc,
		Logger:       slog.New(slog.DiscardHandler),
	}
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(s.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.GetHead)
	if s.Instrument != nil {
		r.Use(s.Instrument)
	}

	r.Get("/", s.handleIndex)
	r.Get("/movie/{id}", s.handleMovie)

	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
			MaxAge:         300,
		}))

		r.Get("/all-movies.json", s.handleAllMovies)
		r.Get("/healthz", s.handleHealth)

		r.Group(func(r chi.Router) {
			if s.SearchRateLimit > 0 {
				r.Use(httprate.LimitByIP(s.SearchRateLimit, time.Minute))
			}
			r.Get("/search", s.handleSearch)
		})
	})

	if s.Metrics != nil {
		r.Handle("/metrics", s.Metrics)
	}

	return r
}

// Listen binds the server address. Serve calls it if needed; calling it
// first lets callers learn the bound port via URL.
func (s *Server) Listen() error {
	if s.ln != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.Addr, err)
	}
	s.ln = ln
	return nil
}

// URL returns the base URL of the listening server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Serve serves HTTP until ctx is canceled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	s.Logger.Info("http server listening", "addr", s.ln.Addr().String())

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		// ctx is already done, so shutdown needs a fresh deadline.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown failed: %w", err)
		}
		<-errCh
		return nil
	}
}
