package pagestore

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLocalPutOpen(t *testing.T) {
	dir := t.TempDir()
	store := NewLocal(dir)
	ctx := context.Background()

	data := []byte("meta page bytes for a 100 list index")
	require.NoError(t, store.Put(ctx, "meta.page", data))

	// File lands at the expected path, with no temp leftovers.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "meta.page", entries[0].Name())

	page, err := store.Open(ctx, "meta.page")
	require.NoError(t, err)
	defer page.Close()

	require.Equal(t, int64(len(data)), page.Size())

	buf := make([]byte, 4)
	n, err := page.ReadAt(buf, 0)
	require.NoError(t, err)
	require.Equal(t, 4, n)
	require.Equal(t, "meta", string(buf))

	got, err := ReadAll(ctx, store, "meta.page")
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestLocalPutReplaces(t *testing.T) {
	store := NewLocal(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "meta.page", []byte("old")))
	require.NoError(t, store.Put(ctx, "meta.page", []byte("new contents")))

	got, err := ReadAll(ctx, store, "meta.page")
	require.NoError(t, err)
	require.Equal(t, []byte("new contents"), got)
}

func TestLocalOpenMissing(t *testing.T) {
	store := NewLocal(t.TempDir())

	_, err := store.Open(context.Background(), "missing.page")
	require.ErrorIs(t, err, ErrNotFound)
}
