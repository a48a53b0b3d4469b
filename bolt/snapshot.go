// Package bolt provides a BoltDB-backed implementation of movies.SnapshotStore,
// the durable client-side storage that holds the replicated catalog.
package bolt

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/movies"
	bolt "go.etcd.io/bbolt"
)

// Compile-time interface verification.
var _ movies.SnapshotStore = (*SnapshotStore)(nil)

var bucketSnapshots = []byte("snapshots")

// DefaultOpenTimeout bounds how long Open waits for the file lock held by
// another process.
const DefaultOpenTimeout = time.Second

// SnapshotStore implements movies.SnapshotStore using a single bbolt bucket.
type SnapshotStore struct {
	db   *bolt.DB
	path string
}

// NewSnapshotStore creates a new SnapshotStore for the database file at path.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{path: path}
}

// Open opens (or creates) the database file and its bucket.
func (s *SnapshotStore) Open() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return movies.Errorf(movies.ESTORAGE, "mkdir %s: %v", dir, err)
	}

	db, err := bolt.Open(s.path, 0o600, &bolt.Options{Timeout: DefaultOpenTimeout})
	if err != nil {
		return movies.Errorf(movies.ESTORAGE, "open snapshot db: %v", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSnapshots)
		return err
	})
	if err != nil {
		db.Close()
		return movies.Errorf(movies.ESTORAGE, "create bucket: %v", err)
	}

	s.db = db
	return nil
}

// Close closes the database file.
func (s *SnapshotStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// GetSnapshot returns a copy of the bytes stored under key.
func (s *SnapshotStore) GetSnapshot(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketSnapshots).Get([]byte(key))
		if v == nil {
			return nil
		}
		// Values are only valid for the life of the transaction.
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, movies.Errorf(movies.ESTORAGE, "read snapshot %q: %v", key, err)
	}
	if data == nil {
		return nil, movies.Errorf(movies.ENOTFOUND, "snapshot %q not found", key)
	}
	return data, nil
}

// PutSnapshot stores data under key.
func (s *SnapshotStore) PutSnapshot(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSnapshots).Put([]byte(key), data)
	})
	if err != nil {
		return movies.Errorf(movies.ESTORAGE, "write snapshot %q: %v", key, err)
	}
	return nil
}
