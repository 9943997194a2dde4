package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.etcd.io/bbolt"

	"github.com/bizsync/bizsync/internal/models"
)

func TestNew_Success(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer func() {
		require.NoError(t, store.Close())
	}()

	info, err := os.Stat(dbPath)
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	// All buckets must exist: auth, metadata, and one per entity type
	err = store.db.View(func(tx *bbolt.Tx) error {
		expected := [][]byte{bucketAuth, bucketMetadata}
		for _, et := range models.EntityTypes() {
			expected = append(expected, []byte(et))
		}
		for _, b := range expected {
			if tx.Bucket(b) == nil {
				return os.ErrNotExist
			}
		}
		return nil
	})
	require.NoError(t, err)
}

func TestNew_InvalidPath(t *testing.T) {
	// A path with a NUL byte fails on open
	invalidPath := string([]byte{0})

	store, err := New(context.Background(), invalidPath)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestClose_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "testdb.db")

	store, err := New(context.Background(), dbPath)
	require.NoError(t, err)

	require.NoError(t, store.Close())

	// Close on a nil db must not fail
	store.db = nil
	assert.NoError(t, store.Close())
}
