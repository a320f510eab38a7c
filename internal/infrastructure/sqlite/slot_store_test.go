package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/listcalc/internal/infrastructure/sqlite"
)

func openTemp(t *testing.T) (*sqlite.SlotStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "listcalc.db")
	s, err := sqlite.Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func TestSlotStore_GetPutDelete(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)

	_, ok, err := s.Get(ctx, "produtos")
	require.NoError(t, err)
	assert.False(t, ok, "slot inexistente")

	require.NoError(t, s.Put(ctx, "produtos", []byte(`[{"id":"1"}]`)))
	require.NoError(t, s.Put(ctx, "produtos", []byte(`[]`)))

	v, ok, err := s.Get(ctx, "produtos")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", string(v))

	require.NoError(t, s.Delete(ctx, "produtos"))
	_, ok, err = s.Get(ctx, "produtos")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Delete(ctx, "produtos"), "borrar dos veces no falla")
}

func TestSlotStore_PersisteEntreAperturas(t *testing.T) {
	ctx := context.Background()
	s, path := openTemp(t)
	require.NoError(t, s.Put(ctx, "produtos", []byte(`["x"]`)))
	require.NoError(t, s.Close())

	reopened, err := sqlite.Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get(ctx, "produtos")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `["x"]`, string(v))
}

func TestSlotStore_ClavesIndependientes(t *testing.T) {
	ctx := context.Background()
	s, _ := openTemp(t)
	require.NoError(t, s.Put(ctx, "a", []byte("1")))
	require.NoError(t, s.Put(ctx, "b", []byte("2")))

	v, _, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "1", string(v))
}
