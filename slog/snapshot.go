package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/movies"
)

// Ensure LoggingSnapshotStore implements movies.SnapshotStore.
var _ movies.SnapshotStore = (*LoggingSnapshotStore)(nil)

// LoggingSnapshotStore wraps a SnapshotStore with debug logging.
type LoggingSnapshotStore struct {
	next   movies.SnapshotStore
	logger *slog.Logger
}

// NewLoggingSnapshotStore creates a new LoggingSnapshotStore.
func NewLoggingSnapshotStore(next movies.SnapshotStore, logger *slog.Logger) *LoggingSnapshotStore {
	return &LoggingSnapshotStore{next: next, logger: logger}
}

// GetSnapshot delegates to the wrapped store. A missing key is reported as
// a miss rather than an error.
func (s *LoggingSnapshotStore) GetSnapshot(ctx context.Context, key string) (data []byte, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"key", key,
			"bytes", len(data),
			"duration", time.Since(begin),
		}
		switch {
		case movies.ErrorCode(err) == movies.ENOTFOUND:
			attrs = append(attrs, "hit", false)
		case err != nil:
			attrs = append(attrs, "err", err)
		default:
			attrs = append(attrs, "hit", true)
		}
		s.logger.Debug("snapshot get", attrs...)
	}(time.Now())
	return s.next.GetSnapshot(ctx, key)
}

// PutSnapshot delegates to the wrapped store and logs the write.
func (s *LoggingSnapshotStore) PutSnapshot(ctx context.Context, key string, data []byte) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("snapshot put",
			"key", key,
			"bytes", len(data),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.PutSnapshot(ctx, key, data)
}
