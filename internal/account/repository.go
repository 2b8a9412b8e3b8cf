package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	accountdb "recipe-finder/internal/account/db"
)

// Repository handles persistence of accounts.
type Repository struct {
	queries *accountdb.Queries
}

// NewRepository creates a new account repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: accountdb.New(d),
	}
}

// Create inserts a new account. It returns ErrUsernameTaken when the username
// is already registered; the table is left unchanged in that case.
func (r *Repository) Create(ctx context.Context, username, passwordHash string) (*Account, error) {
	row, err := r.queries.CreateAccount(ctx, accountdb.CreateAccountParams{
		Username:     username,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to insert account: %w", err)
	}
	return toAccount(row), nil
}

// GetByUsername retrieves an account by username.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*Account, error) {
	row, err := r.queries.GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // No account found
		}
		return nil, fmt.Errorf("failed to get account by username: %w", err)
	}
	return toAccount(row), nil
}

// GetByID retrieves an account by ID.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Account, error) {
	row, err := r.queries.GetAccountByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}
	return toAccount(row), nil
}

// Count returns the number of registered accounts.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	n, err := r.queries.CountAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return n, nil
}

func toAccount(row accountdb.Account) *Account {
	return &Account{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
	}
}
