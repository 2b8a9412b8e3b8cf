package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/apex/log"
	"github.com/golang-jwt/jwt/v5"

	"recipe-finder/internal/account"
)

// CookieName is the name of the session cookie.
const CookieName = "recipe_finder_session"

// Account is the authenticated account carried through a request.
type Account struct {
	ID       int64
	Username string
}

type contextKey string

const accountContextKey contextKey = "account"

// WithAccount returns a copy of ctx carrying acc.
func WithAccount(ctx context.Context, acc Account) context.Context {
	return context.WithValue(ctx, accountContextKey, acc)
}

// FromContext returns the authenticated account, if any.
func FromContext(ctx context.Context) (Account, bool) {
	acc, ok := ctx.Value(accountContextKey).(Account)
	return acc, ok
}

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AccountLookup resolves an account id. A missing account is (nil, nil).
type AccountLookup interface {
	GetByID(ctx context.Context, id int64) (*account.Account, error)
}

// Manager issues and verifies signed session cookies.
type Manager struct {
	secret   []byte
	ttl      time.Duration
	secure   bool
	accounts AccountLookup
	now      func() time.Time
}

// NewManager creates a new session manager. secure marks the cookie Secure.
// Sessions are only honoured while accounts still knows the account.
func NewManager(secret string, ttl time.Duration, secure bool, accounts AccountLookup) *Manager {
	return &Manager{
		secret:   []byte(secret),
		ttl:      ttl,
		secure:   secure,
		accounts: accounts,
		now:      time.Now,
	}
}

// Issue signs a token for acc and sets it as the session cookie.
func (m *Manager) Issue(w http.ResponseWriter, acc Account) error {
	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: acc.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(acc.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("failed to sign session token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(m.ttl),
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Clear removes the session cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Parse validates a signed token and returns the account it carries.
func (m *Manager) Parse(tokenString string) (Account, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	var c claims
	if _, err := parser.ParseWithClaims(tokenString, &c, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}); err != nil {
		return Account{}, fmt.Errorf("failed to parse session token: %w", err)
	}

	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || id <= 0 {
		return Account{}, fmt.Errorf("invalid session subject %q", c.Subject)
	}
	return Account{ID: id, Username: c.Username}, nil
}

// Middleware resolves the session cookie into a request-scoped Account.
// Requests without a valid cookie, or whose account no longer exists, pass
// through anonymously.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		acc, err := m.Parse(cookie.Value)
		if err != nil {
			if !errors.Is(err, jwt.ErrTokenExpired) {
				log.WithError(err).Warn("rejected session cookie")
			}
			m.Clear(w)
			next.ServeHTTP(w, r)
			return
		}

		stored, err := m.accounts.GetByID(r.Context(), acc.ID)
		if err != nil {
			log.WithError(err).WithField("account_id", acc.ID).Error("failed to load session account")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		if stored == nil {
			log.WithField("account_id", acc.ID).Warn("session references unknown account")
			m.Clear(w)
			next.ServeHTTP(w, r)
			return
		}
		acc.Username = stored.Username

		next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), acc)))
	})
}

// RequireAccount redirects anonymous requests to the login page.
func RequireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromContext(r.Context()); !ok {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
