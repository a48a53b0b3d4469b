// Package replica keeps a client-side copy of the movie catalog and uses it
// to answer searches locally, falling back to the server until the copy is
// ready.
package replica

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fwojciec/movies"
	json "github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
)

// Status is the lifecycle state of a Store.
type Status int

// Store states. A store moves Empty -> Populating -> Ready and never leaves
// Ready. A failed population moves it back to Empty.
const (
	StatusEmpty Status = iota
	StatusPopulating
	StatusReady
)

func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusPopulating:
		return "populating"
	case StatusReady:
		return "ready"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Store holds the replicated catalog in memory, backed by a durable
// snapshot. It has a single writer, the population routine, and any
// number of readers.
type Store struct {
	catalog   movies.Catalog
	snapshots movies.SnapshotStore

	// Logger receives warnings that do not fail population.
	Logger *slog.Logger

	mu     sync.RWMutex
	status Status
	movies []*movies.Movie

	group singleflight.Group
}

// NewStore creates an empty Store that fetches from catalog and persists to
// snapshots.
func NewStore(catalog movies.Catalog, snapshots movies.SnapshotStore) *Store {
	return &Store{
		catalog:   catalog,
		snapshots: snapshots,
		Logger:    slog.New(slog.DiscardHandler),
	}
}

// Get returns the replicated movies in catalog order without any I/O. The
// slice is shared and must not be modified.
func (s *Store) Get() []*movies.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.movies
}

// Status returns the current lifecycle state.
func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Populate fills the store. A durable snapshot is used when present;
// otherwise the whole catalog is fetched once, persisted verbatim and
// decoded. Concurrent calls share a single population. Once the store is
// ready, Populate returns immediately.
//
// The shared population is detached from ctx, so one caller giving up
// never cancels it for the others; a caller whose ctx ends first gets
// ctx.Err() while the population carries on.
func (s *Store) Populate(ctx context.Context) error {
	if s.Status() == StatusReady {
		return nil
	}

	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan(movies.SnapshotKey, func() (any, error) {
		return nil, s.populate(detached)
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Load populates the store if needed and returns its contents.
func (s *Store) Load(ctx context.Context) ([]*movies.Movie, error) {
	if err := s.Populate(ctx); err != nil {
		return nil, err
	}
	return s.Get(), nil
}

func (s *Store) populate(ctx context.Context) error {
	s.mu.Lock()
	// A previous flight may have finished between the status check and Do.
	if s.status == StatusReady {
		s.mu.Unlock()
		return nil
	}
	s.status = StatusPopulating
	s.mu.Unlock()

	ms, err := s.hydrate(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil || len(ms) == 0 {
		// An empty catalog is not a usable replica; stay Empty so the
		// server remains authoritative.
		s.status = StatusEmpty
		return err
	}
	s.movies = ms
	s.status = StatusReady
	return nil
}

func (s *Store) hydrate(ctx context.Context) ([]*movies.Movie, error) {
	data, err := s.snapshots.GetSnapshot(ctx, movies.SnapshotKey)
	switch {
	case err == nil:
		ms, decodeErr := decodeCatalog(data)
		switch {
		case decodeErr != nil:
			s.Logger.Warn("discarding unreadable snapshot", "key", movies.SnapshotKey, "err", decodeErr)
		case len(ms) == 0:
			s.Logger.Warn("discarding empty snapshot", "key", movies.SnapshotKey)
		default:
			return ms, nil
		}
	case movies.ErrorCode(err) != movies.ENOTFOUND:
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	data, err = s.catalog.FetchCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}

	ms, err := decodeCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(ms) == 0 {
		return ms, nil
	}

	// The in-memory copy is still usable when persisting fails; the next
	// process simply fetches again.
	if err := s.snapshots.PutSnapshot(ctx, movies.SnapshotKey, data); err != nil {
		s.Logger.Warn("persist snapshot failed", "key", movies.SnapshotKey, "err", err)
	}

	return ms, nil
}

// decodeCatalog decodes a bulk catalog payload. A null entry makes the
// whole payload malformed so it is never hydrated or persisted.
func decodeCatalog(data []byte) ([]*movies.Movie, error) {
	var ms []*movies.Movie
	if err := json.Unmarshal(data, &ms); err != nil {
		return nil, movies.Errorf(movies.EINVALID, "malformed catalog: %v", err)
	}
	for i, m := range ms {
		if m == nil {
			return nil, movies.Errorf(movies.EINVALID, "malformed catalog: entry %d is null", i)
		}
	}
	return ms, nil
}
