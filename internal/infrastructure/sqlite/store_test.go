package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mashop-api/internal/infrastructure/sqlite"
)

func openStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	type doc struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	require.NoError(t, store.Set(ctx, "k", doc{Name: "widget", Count: 3}))

	var got doc
	found, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, doc{Name: "widget", Count: 3}, got)
}

func TestStore_ClaveAusente(t *testing.T) {
	store := openStore(t)

	var got map[string]any
	found, err := store.Get(context.Background(), "no-existe", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got, "dest queda sin tocar si la clave no existe")
}

func TestStore_SetReemplaza(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []string{"a"}))
	require.NoError(t, store.Set(ctx, "k", []string{"b", "c"}))

	var got []string
	found, err := store.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"b", "c"}, got, "last-write-wins por clave")
}

func TestStore_ReabrirConservaDatos(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set(ctx, "k", 42))
	require.NoError(t, store.Close())

	reopened, err := sqlite.Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	var got int
	found, err := reopened.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 42, got)
}
