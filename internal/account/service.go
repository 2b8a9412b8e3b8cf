package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/apex/log"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxUsernameLength = 150
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidUsername    = errors.New("username must be between 1 and 150 characters")
	ErrInvalidPassword    = errors.New("password must be between 1 and 72 bytes")
)

// Service implements signup and login on top of a Repository.
type Service struct {
	repo      *Repository
	cost      int
	dummyHash []byte
}

// NewService creates a new account service using bcrypt's default cost.
func NewService(repo *Repository) *Service {
	return newService(repo, bcrypt.DefaultCost)
}

// WithCost returns a copy of the service hashing with the given bcrypt cost.
func (s *Service) WithCost(cost int) *Service {
	return newService(s.repo, cost)
}

func newService(repo *Repository, cost int) *Service {
	// Compared against when the username is unknown so both failure paths
	// take the same time.
	dummy, err := bcrypt.GenerateFromPassword([]byte("recipe-finder-dummy-password"), cost)
	if err != nil {
		panic(fmt.Sprintf("failed to generate dummy password hash: %v", err))
	}
	return &Service{
		repo:      repo,
		cost:      cost,
		dummyHash: dummy,
	}
}

// Signup registers a new account. The username is trimmed before use.
func (s *Service) Signup(ctx context.Context, username, password string) (*Account, error) {
	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n == 0 || n > maxUsernameLength {
		return nil, ErrInvalidUsername
	}
	if password == "" || len(password) > maxPasswordBytes {
		return nil, ErrInvalidPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	acc, err := s.repo.Create(ctx, username, string(hash))
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"account_id": acc.ID, "username": acc.Username}).Info("account created")
	return acc, nil
}

// Login verifies credentials. Unknown usernames and wrong passwords both
// return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (*Account, error) {
	username = strings.TrimSpace(username)

	acc, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if acc == nil {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		log.WithField("username", username).Info("login failed: unknown username")
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		log.WithField("account_id", acc.ID).Info("login failed: password mismatch")
		return nil, ErrInvalidCredentials
	}

	return acc, nil
}
