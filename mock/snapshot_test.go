package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/movies"
	"github.com/fwojciec/movies/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySnapshotStore(t *testing.T) {
	t.Parallel()

	t.Run("missing key is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		s := mock.NewMemorySnapshotStore()

		_, err := s.GetSnapshot(context.Background(), movies.SnapshotKey)

		assert.Equal(t, movies.ENOTFOUND, movies.ErrorCode(err))
	})

	t.Run("stores a copy of the data", func(t *testing.T) {
		t.Parallel()

		s := mock.NewMemorySnapshotStore()
		data := []byte(`[{"id":1}]`)
		require.NoError(t, s.PutSnapshot(context.Background(), movies.SnapshotKey, data))
		data[0] = 'X'

		got, err := s.GetSnapshot(context.Background(), movies.SnapshotKey)
		require.NoError(t, err)
		assert.Equal(t, `[{"id":1}]`, string(got))

		got[0] = 'Y'
		again, err := s.GetSnapshot(context.Background(), movies.SnapshotKey)
		require.NoError(t, err)
		assert.Equal(t, `[{"id":1}]`, string(again))
	})
}
