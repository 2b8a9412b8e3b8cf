package favorites

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-finder/internal/account"
	"recipe-finder/internal/database"
)

func TestAccountFavorites(t *testing.T) {
	ctx := context.Background()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "favorites.db"))
	require.NoError(t, err)
	defer db.Close()

	accounts := account.NewRepository(db.SQL)
	alice, err := accounts.Create(ctx, "alice", "hash")
	require.NoError(t, err)
	bob, err := accounts.Create(ctx, "bob", "hash")
	require.NoError(t, err)

	repo := NewRepository(db.SQL)
	aliceFavs := repo.For(alice.ID)
	bobFavs := repo.For(bob.ID)

	pasta, err := aliceFavs.Add(ctx, Favorite{RecipeID: 641803, Title: "Easy Tomato Pasta", Image: "pasta.jpg"})
	require.NoError(t, err)
	assert.NotZero(t, pasta.ID)
	_, err = aliceFavs.Add(ctx, Favorite{RecipeID: 715538, Title: "Garlic Bread"})
	require.NoError(t, err)

	t.Run("ListIsScopedAndOrdered", func(t *testing.T) {
		list, err := aliceFavs.List(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Easy Tomato Pasta", list[0].Title)
		assert.Equal(t, "Garlic Bread", list[1].Title)
		assert.Empty(t, list[1].Image)

		list, err = bobFavs.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	t.Run("RemovingForeignFavoriteIsNoop", func(t *testing.T) {
		removed, err := bobFavs.Remove(ctx, pasta.ID)
		require.NoError(t, err)
		assert.False(t, removed)

		list, err := aliceFavs.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("RemoveOwn", func(t *testing.T) {
		removed, err := aliceFavs.Remove(ctx, pasta.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = aliceFavs.Remove(ctx, pasta.ID)
		require.NoError(t, err)
		assert.False(t, removed)
	})

	t.Run("UnknownAccountRejected", func(t *testing.T) {
		_, err := repo.For(9999).Add(ctx, Favorite{RecipeID: 1, Title: "x"})
		assert.Error(t, err)
	})
}
