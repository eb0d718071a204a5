package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	repo, err := Load()
	require.NoError(t, err)

	ctx := context.Background()

	arts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, arts, 8)

	cats, err := repo.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 8)

	ids := repo.Identities()
	assert.Len(t, ids, 5)

	t.Run("display-only piece has no price", func(t *testing.T) {
		art, ok, err := repo.Get(ctx, "6")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Nil(t, art.Price)
		assert.False(t, art.ForSale)
	})

	t.Run("priced piece carries cents", func(t *testing.T) {
		art, ok, err := repo.Get(ctx, "1")
		require.NoError(t, err)
		require.True(t, ok)
		require.NotNil(t, art.Price)
		assert.Equal(t, int64(120000), art.Price.Amount)
		assert.Equal(t, "USD", art.Price.Currency)
	})

	t.Run("every identity has email and phone", func(t *testing.T) {
		for _, id := range ids {
			assert.NotEmpty(t, id.Email)
			assert.NotEmpty(t, id.Phone)
			assert.True(t, id.Role.Valid())
		}
	})
}
