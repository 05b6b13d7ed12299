package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seeuferweg-catalog/internal/repository/postgres"
	"github.com/seeuferweg-catalog/internal/repository/postgres/testhelpers"
)

func setupFavorites(t *testing.T, key string) *postgres.DB {
	tdb := testhelpers.SetupTestDB(t)
	db := postgres.NewDBForTest(tdb.DB, tdb.Logger)
	ctx := context.Background()

	require.NoError(t, postgres.EnsureSchema(ctx, db))
	_, err := db.ExecContext(ctx, `DELETE FROM favorites WHERE storage_key = $1`, key)
	require.NoError(t, err)
	return db
}

func TestFavoritesRepository_LoadEmpty(t *testing.T) {
	db := setupFavorites(t, "test_empty")

	ids, err := postgres.NewFavoritesRepository(db, "test_empty").Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{}, ids)
}

func TestFavoritesRepository_SaveOverwrites(t *testing.T) {
	db := setupFavorites(t, "test_save")
	repo := postgres.NewFavoritesRepository(db, "test_save")
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, []string{"p1", "p2"}))
	require.NoError(t, repo.Save(ctx, []string{"p3", "p1", "p2"}))

	ids, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"p3", "p1", "p2"}, ids)

	require.NoError(t, repo.Save(ctx, nil))
	ids, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestFavoritesRepository_KeysAreIsolated(t *testing.T) {
	db := setupFavorites(t, "test_a")
	_, err := db.ExecContext(context.Background(), `DELETE FROM favorites WHERE storage_key = 'test_b'`)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, postgres.NewFavoritesRepository(db, "test_a").Save(ctx, []string{"a"}))

	ids, err := postgres.NewFavoritesRepository(db, "test_b").Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
