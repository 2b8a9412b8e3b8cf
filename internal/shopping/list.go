package shopping

import (
	"context"
	"database/sql"
	"fmt"

	shoppingdb "recipe-finder/internal/shopping/db"
)

// Item is one line of a shopping list. Quantity is free text and may be empty.
type Item struct {
	ID         int64
	Ingredient string
	Quantity   string
}

// Repository handles persistence of shopping lists.
type Repository struct {
	queries *shoppingdb.Queries
	db      *sql.DB
}

// NewRepository creates a new shopping list repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: shoppingdb.New(d),
		db:      d,
	}
}

// For returns the shopping list of a single account.
func (r *Repository) For(accountID int64) *List {
	return &List{queries: r.queries, db: r.db, accountID: accountID}
}

// List is an account-scoped view of the shopping_list_items table.
type List struct {
	queries   *shoppingdb.Queries
	db        *sql.DB
	accountID int64
}

// Items returns the list in insertion order.
func (l *List) Items(ctx context.Context) ([]Item, error) {
	rows, err := l.queries.ListShoppingListItems(ctx, l.accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shopping items for account %d: %w", l.accountID, err)
	}

	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, Item{
			ID:         row.ID,
			Ingredient: row.Ingredient,
			Quantity:   row.Quantity,
		})
	}
	return items, nil
}

// Append inserts items in a single transaction. Either all of them are
// persisted or none are.
func (l *List) Append(ctx context.Context, items []Item) error {
	if len(items) == 0 {
		return nil
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := l.queries.WithTx(tx)
	for _, item := range items {
		err := qtx.InsertShoppingListItem(ctx, shoppingdb.InsertShoppingListItemParams{
			AccountID:  l.accountID,
			Ingredient: item.Ingredient,
			Quantity:   item.Quantity,
		})
		if err != nil {
			return fmt.Errorf("failed to insert shopping item %q: %w", item.Ingredient, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit shopping items: %w", err)
	}
	return nil
}

// Clear removes every item of the account and returns how many were deleted.
func (l *List) Clear(ctx context.Context) (int64, error) {
	n, err := l.queries.DeleteShoppingListItems(ctx, l.accountID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear shopping list for account %d: %w", l.accountID, err)
	}
	return n, nil
}
