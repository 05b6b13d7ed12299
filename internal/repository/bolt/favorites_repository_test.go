package bolt_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	bbolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/seeuferweg-catalog/internal/repository/bolt"
)

func openStore(t *testing.T, path string) *bolt.Store {
	store, err := bolt.Open(path, zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestFavoritesRepository_RoundTripAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "favorites.db")
	ctx := context.Background()

	store := openStore(t, path)
	repo := bolt.NewFavoritesRepository(store, "seeuferweg_favorites")

	ids, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{}, ids)

	require.NoError(t, repo.Save(ctx, []string{"p3", "p1", "p2"}))
	require.NoError(t, store.Close())

	store = openStore(t, path)
	defer store.Close()

	ids, err = bolt.NewFavoritesRepository(store, "seeuferweg_favorites").Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p1", "p2"}, ids)
}

func TestFavoritesRepository_StoresJSONArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.db")
	store := openStore(t, path)
	require.NoError(t, bolt.NewFavoritesRepository(store, "k").Save(context.Background(), []string{"a"}))
	require.NoError(t, store.Close())

	db, err := bbolt.Open(path, 0600, nil)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.View(func(tx *bbolt.Tx) error {
		assert.JSONEq(t, `["a"]`, string(tx.Bucket([]byte("favorites")).Get([]byte("k"))))
		return nil
	}))
}

func TestFavoritesRepository_CorruptValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.db")
	store := openStore(t, path)
	require.NoError(t, store.Close())

	db, err := bbolt.Open(path, 0600, nil)
	require.NoError(t, err)
	require.NoError(t, db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte("favorites")).Put([]byte("k"), []byte("{oops"))
	}))
	require.NoError(t, db.Close())

	store = openStore(t, path)
	defer store.Close()
	_, err = bolt.NewFavoritesRepository(store, "k").Load(context.Background())
	assert.Error(t, err)
}

func TestFavoritesRepository_CancelledContext(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "favorites.db"))
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, bolt.NewFavoritesRepository(store, "k").Save(ctx, []string{"x"}), context.Canceled)
}
