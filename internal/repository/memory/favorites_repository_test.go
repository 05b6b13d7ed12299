package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoritesRepository_CopiesSlices(t *testing.T) {
	repo := NewFavoritesRepository("p1")
	ctx := context.Background()

	ids, err := repo.Load(ctx)
	require.NoError(t, err)
	ids[0] = "mutated"

	again, _ := repo.Load(ctx)
	assert.Equal(t, []string{"p1"}, again)

	in := []string{"a", "b"}
	require.NoError(t, repo.Save(ctx, in))
	in[0] = "z"
	again, _ = repo.Load(ctx)
	assert.Equal(t, []string{"a", "b"}, again)
	assert.Equal(t, 1, repo.Saves())
}
