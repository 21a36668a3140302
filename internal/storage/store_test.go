package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"FurniStore/internal/storage"
)

func runStoreContract(t *testing.T, s storage.Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.Ping(ctx))

	_, ok, err := s.Get(ctx, storage.KeyUsers)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, storage.KeyUsers, `[{"id":"a"}]`))
	v, ok, err := s.Get(ctx, storage.KeyUsers)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"id":"a"}]`, v)

	require.NoError(t, s.Set(ctx, storage.KeyUsers, `[]`))
	v, _, err = s.Get(ctx, storage.KeyUsers)
	require.NoError(t, err)
	assert.Equal(t, `[]`, v)

	require.NoError(t, s.Remove(ctx, storage.KeyUsers))
	_, ok, err = s.Get(ctx, storage.KeyUsers)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Remove(ctx, storage.KeyUsers), "removing a missing key is a no-op")

	err = s.Set(ctx, "../escape", "x")
	assert.ErrorIs(t, err, storage.ErrInvalidKey)
}

func TestMemStore(t *testing.T) {
	runStoreContract(t, storage.NewMemStore())
}

func TestFileStore(t *testing.T) {
	s, err := storage.NewFileStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	runStoreContract(t, s)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s1, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, s1.Set(ctx, storage.KeyFavorites, `[1,2]`))

	s2, err := storage.NewFileStore(dir)
	require.NoError(t, err)
	v, ok, err := s2.Get(ctx, storage.KeyFavorites)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[1,2]`, v)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "favorites.json", entries[0].Name())
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemStore()

	type rec struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	var got []rec
	ok, err := storage.GetJSON(ctx, s, storage.KeyUsers, &got)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	require.NoError(t, storage.SetJSON(ctx, s, storage.KeyUsers, []rec{{ID: "1", Name: "a"}}))
	ok, err = storage.GetJSON(ctx, s, storage.KeyUsers, &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []rec{{ID: "1", Name: "a"}}, got)

	require.NoError(t, s.Set(ctx, storage.KeyOrders, "{not json"))
	_, err = storage.GetJSON(ctx, s, storage.KeyOrders, &got)
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, c, err := storage.Open(ctx, storage.DriverMemory, "", "")
	require.NoError(t, err)
	assert.IsType(t, &storage.MemStore{}, s)
	require.NoError(t, c.Close())

	s, c, err = storage.Open(ctx, storage.DriverFile, t.TempDir(), "")
	require.NoError(t, err)
	assert.IsType(t, &storage.FileStore{}, s)
	require.NoError(t, c.Close())

	_, _, err = storage.Open(ctx, "redis", "", "")
	assert.Error(t, err)
}
