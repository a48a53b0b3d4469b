package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/movies"
)

var _ movies.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is a mock implementation of movies.SnapshotStore.
type SnapshotStore struct {
	GetSnapshotFn func(ctx context.Context, key string) ([]byte, error)
	PutSnapshotFn func(ctx context.Context, key string, data []byte) error
}

func (s *SnapshotStore) GetSnapshot(ctx context.Context, key string) ([]byte, error) {
	return s.GetSnapshotFn(ctx, key)
}

func (s *SnapshotStore) PutSnapshot(ctx context.Context, key string, data []byte) error {
	return s.PutSnapshotFn(ctx, key, data)
}

// MemorySnapshotStore is an in-memory movies.SnapshotStore for tests that
// need working persistence rather than scripted responses.
type MemorySnapshotStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

var _ movies.SnapshotStore = (*MemorySnapshotStore)(nil)

// NewMemorySnapshotStore creates an empty MemorySnapshotStore.
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{data: make(map[string][]byte)}
}

func (s *MemorySnapshotStore) GetSnapshot(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, movies.Errorf(movies.ENOTFOUND, "snapshot %q not found", key)
	}
	return append([]byte(nil), v...), nil
}

func (s *MemorySnapshotStore) PutSnapshot(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), data...)
	return nil
}
