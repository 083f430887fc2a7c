package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/errnogen/internal/model"
)

func newTestStore(t *testing.T) *SnapshotStore {
	t.Helper()
	tmpDir, err := os.MkdirTemp("", "errnogen-sqlite-test-*")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(tmpDir) })

	store, err := OpenSnapshotStore(filepath.Join(tmpDir, "errno.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSnapshotStore_SaveLoad(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	table := &model.Table{
		Source: "host",
		GOOS:   "linux",
		GOARCH: "amd64",
		Entries: []model.Entry{
			{Name: "EWOULDBLOCK", Code: 11},
			{Name: "EPERM", Code: 1},
			{Name: "EAGAIN", Code: 11},
		},
	}

	t.Run("round trip keeps order and provenance", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "linux-amd64", table))

		got, err := store.Load(ctx, "linux-amd64")
		require.NoError(t, err)
		assert.Equal(t, table, got)
	})

	t.Run("save replaces existing snapshot", func(t *testing.T) {
		smaller := &model.Table{Source: "table:x.yaml", Entries: []model.Entry{{Name: "EIO", Code: 5}}}
		require.NoError(t, store.Save(ctx, "linux-amd64", smaller))

		got, err := store.Load(ctx, "linux-amd64")
		require.NoError(t, err)
		assert.Equal(t, smaller.Entries, got.Entries)
		assert.Empty(t, got.GOOS)
	})

	t.Run("empty table", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "empty", &model.Table{Source: "host"}))

		got, err := store.Load(ctx, "empty")
		require.NoError(t, err)
		assert.Empty(t, got.Entries)
	})

	t.Run("load unknown snapshot", func(t *testing.T) {
		_, err := store.Load(ctx, "nope")
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrSnapshotNotFound))
	})
}

func TestSnapshotStore_ListDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.Save(ctx, "b", &model.Table{Source: "host", Entries: []model.Entry{{Name: "EPERM", Code: 1}}}))
	require.NoError(t, store.Save(ctx, "a", &model.Table{Source: "host", GOOS: "darwin", Entries: []model.Entry{
		{Name: "EPERM", Code: 1},
		{Name: "ENOENT", Code: 2},
	}}))

	infos, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "a", infos[0].Name)
	assert.Equal(t, "darwin", infos[0].GOOS)
	assert.Equal(t, 2, infos[0].Entries)
	assert.False(t, infos[0].CreatedAt.IsZero())
	assert.Equal(t, "b", infos[1].Name)
	assert.Equal(t, 1, infos[1].Entries)

	require.NoError(t, store.Delete(ctx, "a"))
	infos, err = store.List(ctx)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "b", infos[0].Name)

	err = store.Delete(ctx, "a")
	assert.True(t, errors.Is(err, model.ErrSnapshotNotFound))
}
