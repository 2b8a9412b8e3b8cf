package favorites

import (
	"context"
	"database/sql"
	"fmt"

	favoritesdb "recipe-finder/internal/favorites/db"
)

// Favorite is a recipe saved by an account.
type Favorite struct {
	ID       int64
	RecipeID int64
	Title    string
	Image    string
}

// Repository handles persistence of favorites.
type Repository struct {
	queries *favoritesdb.Queries
}

// NewRepository creates a new favorites repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: favoritesdb.New(d),
	}
}

// For returns the favorites of a single account. Every operation on the
// returned handle is filtered by accountID.
func (r *Repository) For(accountID int64) *AccountFavorites {
	return &AccountFavorites{queries: r.queries, accountID: accountID}
}

// AccountFavorites is an account-scoped view of the favorites table.
type AccountFavorites struct {
	queries   *favoritesdb.Queries
	accountID int64
}

// Add saves a recipe as a favorite.
func (f *AccountFavorites) Add(ctx context.Context, fav Favorite) (Favorite, error) {
	row, err := f.queries.InsertFavorite(ctx, favoritesdb.InsertFavoriteParams{
		AccountID: f.accountID,
		RecipeID:  fav.RecipeID,
		Title:     fav.Title,
		Image:     fav.Image,
	})
	if err != nil {
		return Favorite{}, fmt.Errorf("failed to insert favorite: %w", err)
	}
	return toFavorite(row), nil
}

// Remove deletes a favorite owned by the account. It reports false, without
// error, when no such favorite exists for this account.
func (f *AccountFavorites) Remove(ctx context.Context, favoriteID int64) (bool, error) {
	n, err := f.queries.DeleteFavorite(ctx, favoritesdb.DeleteFavoriteParams{
		ID:        favoriteID,
		AccountID: f.accountID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete favorite %d: %w", favoriteID, err)
	}
	return n > 0, nil
}

// List returns the account's favorites in insertion order.
func (f *AccountFavorites) List(ctx context.Context) ([]Favorite, error) {
	rows, err := f.queries.ListFavoritesByAccount(ctx, f.accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites for account %d: %w", f.accountID, err)
	}

	favs := make([]Favorite, 0, len(rows))
	for _, row := range rows {
		favs = append(favs, toFavorite(row))
	}
	return favs, nil
}

func toFavorite(row favoritesdb.Favorite) Favorite {
	return Favorite{
		ID:       row.ID,
		RecipeID: row.RecipeID,
		Title:    row.Title,
		Image:    row.Image,
	}
}
