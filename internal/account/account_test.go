package account

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"recipe-finder/internal/database"
)

func newTestService(t *testing.T) (*Service, *Repository) {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "accounts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewRepository(db.SQL)
	return newService(repo, bcrypt.MinCost), repo
}

func TestSignup(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	t.Run("StoresHashOnly", func(t *testing.T) {
		acc, err := svc.Signup(ctx, "  alice  ", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, "alice", acc.Username)
		assert.NotEqual(t, "s3cret", acc.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte("s3cret")))
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		before, err := repo.Count(ctx)
		require.NoError(t, err)

		_, err = svc.Signup(ctx, "alice", "other")
		assert.ErrorIs(t, err, ErrUsernameTaken)

		after, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)

		stored, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")),
			"original credentials are untouched")
	})

	t.Run("InvalidInput", func(t *testing.T) {
		tests := []struct {
			name     string
			username string
			password string
			want     error
		}{
			{"EmptyUsername", "   ", "pw", ErrInvalidUsername},
			{"LongUsername", strings.Repeat("u", 151), "pw", ErrInvalidUsername},
			{"EmptyPassword", "bob", "", ErrInvalidPassword},
			{"LongPassword", "bob", strings.Repeat("p", 73), ErrInvalidPassword},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Signup(ctx, tt.username, tt.password)
				assert.ErrorIs(t, err, tt.want)
			})
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	created, err := svc.Signup(ctx, "carol", "correct horse")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		acc, err := svc.Login(ctx, "carol", "correct horse")
		require.NoError(t, err)
		assert.Equal(t, created.ID, acc.ID)
	})

	t.Run("WrongPasswordAndUnknownUserLookAlike", func(t *testing.T) {
		acc, wrongPwErr := svc.Login(ctx, "carol", "battery staple")
		assert.Nil(t, acc)
		assert.ErrorIs(t, wrongPwErr, ErrInvalidCredentials)

		acc, unknownErr := svc.Login(ctx, "nobody", "correct horse")
		assert.Nil(t, acc)
		assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)

		assert.Equal(t, wrongPwErr.Error(), unknownErr.Error())
	})
}

func TestRepositoryLookups(t *testing.T) {
	ctx := context.Background()
	_, repo := newTestService(t)

	acc, err := repo.GetByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, acc)

	acc, err = repo.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, acc)

	created, err := repo.Create(ctx, "dave", "hash")
	require.NoError(t, err)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "dave", byID.Username)
}
