package web

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"recipe-finder/internal/account"
	"recipe-finder/internal/config"
	"recipe-finder/internal/database"
	"recipe-finder/internal/favorites"
	"recipe-finder/internal/metrics"
	"recipe-finder/internal/recipe"
	"recipe-finder/internal/session"
	"recipe-finder/internal/shopping"
)

// recipesMock is a hand-written spoonacular.Client.
type recipesMock struct {
	mu        sync.Mutex
	summaries []recipe.Summary
	details   map[int64]recipe.Detail
	searches  [][]string
	lookups   []int64
}

func (m *recipesMock) FindByIngredients(ctx context.Context, ingredients []string) []recipe.Summary {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searches = append(m.searches, ingredients)
	return m.summaries
}

func (m *recipesMock) GetDetails(ctx context.Context, id int64) (recipe.Detail, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookups = append(m.lookups, id)
	d, ok := m.details[id]
	return d, ok
}

func amount(s string) *json.Number {
	n := json.Number(s)
	return &n
}

type testApp struct {
	server    *httptest.Server
	recipes   *recipesMock
	accounts  *account.Repository
	favorites *favorites.Repository
	shopping  *shopping.Repository
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "web.db")
	db, err := database.NewDB(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		DatabasePath:  dbPath,
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
	}

	mock := &recipesMock{
		summaries: []recipe.Summary{
			{ID: 641803, Title: "Easy Tomato Pasta", Image: "https://img.test/641803.jpg", UsedIngredientCount: 2, MissedIngredientCount: 1},
		},
		details: map[int64]recipe.Detail{
			641803: {
				ID:           641803,
				Title:        "Easy Tomato Pasta",
				Summary:      "<p>A <b>quick</b> dinner.</p>",
				Instructions: "<ol><li>Boil pasta.</li><li>Add sauce.</li></ol>",
				ExtendedIngredients: []recipe.Ingredient{
					{Name: "pasta", Original: "200g pasta", Amount: amount("200"), Unit: "g"},
					{Name: "tomato", Original: "2 tomatoes", Amount: amount("2")},
				},
			},
		},
	}

	accountRepo := account.NewRepository(db.SQL)
	favRepo := favorites.NewRepository(db.SQL)
	shopRepo := shopping.NewRepository(db.SQL)

	srv, err := NewServer(cfg, Services{
		Accounts:  account.NewService(accountRepo).WithCost(bcrypt.MinCost),
		Recipes:   mock,
		Favorites: favRepo,
		Shopping:  shopRepo,
		Generator: shopping.NewGenerator(mock, shopRepo),
		Metrics:   metrics.NewStore(db.SQL),
		Sessions:  session.NewManager(cfg.SessionSecret, cfg.SessionTTL, false, accountRepo),
	})
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)

	return &testApp{
		server:    ts,
		recipes:   mock,
		accounts:  accountRepo,
		favorites: favRepo,
		shopping:  shopRepo,
	}
}

// browser is an HTTP client that keeps cookies and follows redirects.
type browser struct {
	t      *testing.T
	client *http.Client
	base   string
}

func (a *testApp) newBrowser(t *testing.T) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{t: t, client: &http.Client{Jar: jar}, base: a.server.URL}
}

type page struct {
	status int
	path   string
	body   string
}

func (b *browser) do(resp *http.Response, err error) page {
	b.t.Helper()
	require.NoError(b.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return page{status: resp.StatusCode, path: resp.Request.URL.Path, body: string(body)}
}

func (b *browser) get(path string) page {
	b.t.Helper()
	return b.do(b.client.Get(b.base + path))
}

func (b *browser) post(path string, form url.Values) page {
	b.t.Helper()
	return b.do(b.client.PostForm(b.base+path, form))
}

func (b *browser) signupAndLogin(username, password string) {
	b.t.Helper()
	p := b.post("/signup", url.Values{"username": {username}, "password": {password}})
	require.Equal(b.t, http.StatusOK, p.status)
	require.Equal(b.t, "/login", p.path)
	require.Contains(b.t, p.body, "Account created!")

	p = b.post("/login", url.Values{"username": {username}, "password": {password}})
	require.Equal(b.t, http.StatusOK, p.status)
	require.Equal(b.t, "/", p.path)
	require.Contains(b.t, p.body, username)
}

func TestRequiresAccount(t *testing.T) {
	app := newTestApp(t)
	b := app.newBrowser(t)

	for _, path := range []string{"/favorites", "/shopping-list", "/recipes/641803"} {
		t.Run(path, func(t *testing.T) {
			p := b.get(path)
			assert.Equal(t, "/login", p.path)
		})
	}

	p := b.post("/shopping-list/clear", nil)
	assert.Equal(t, "/login", p.path)
}

func TestSessionForMissingAccount(t *testing.T) {
	app := newTestApp(t)
	b := app.newBrowser(t)

	rec := httptest.NewRecorder()
	forger := session.NewManager("test-secret", time.Hour, false, app.accounts)
	require.NoError(t, forger.Issue(rec, session.Account{ID: 4242, Username: "ghost"}))
	base, err := url.Parse(app.server.URL)
	require.NoError(t, err)
	b.client.Jar.SetCookies(base, rec.Result().Cookies())

	p := b.post("/favorites", url.Values{"recipe_id": {"641803"}, "title": {"Easy Tomato Pasta"}})
	assert.Equal(t, http.StatusOK, p.status)
	assert.Equal(t, "/login", p.path)

	b.client.Jar.SetCookies(base, rec.Result().Cookies())
	p = b.post("/shopping-list/generate", url.Values{"recipe_ids": {"641803"}})
	assert.Equal(t, http.StatusOK, p.status)
	assert.Equal(t, "/login", p.path)

	b.client.Jar.SetCookies(base, rec.Result().Cookies())
	p = b.get("/favorites")
	assert.Equal(t, "/login", p.path)
	assert.NotContains(t, p.body, "ghost")

	assert.Empty(t, b.client.Jar.Cookies(base), "the stale session cookie is cleared")
	assert.Empty(t, app.recipes.lookups)
}

func TestSearch(t *testing.T) {
	app := newTestApp(t)
	b := app.newBrowser(t)

	p := b.post("/", url.Values{"ingredients": {"tomato, garlic"}})
	assert.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, "Easy Tomato Pasta")
	assert.Contains(t, p.body, "Used: 2, Missed: 1")
	assert.NotContains(t, p.body, "Add to Favorites", "anonymous users cannot save favorites")

	require.Len(t, app.recipes.searches, 1)
	assert.Equal(t, []string{"tomato", " garlic"}, app.recipes.searches[0])

	app.recipes.summaries = nil
	p = b.post("/", url.Values{"ingredients": {"stone"}})
	assert.Contains(t, p.body, "No recipes found.")
}

func TestSignupAndLogin(t *testing.T) {
	app := newTestApp(t)
	b := app.newBrowser(t)
	b.signupAndLogin("alice", "s3cret")

	t.Run("DuplicateUsername", func(t *testing.T) {
		other := app.newBrowser(t)
		p := other.post("/signup", url.Values{"username": {"alice"}, "password": {"x"}})
		assert.Equal(t, http.StatusConflict, p.status)
		assert.Contains(t, p.body, "That username is already taken.")

		n, err := app.accounts.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("GenericLoginFailure", func(t *testing.T) {
		other := app.newBrowser(t)
		wrongPw := other.post("/login", url.Values{"username": {"alice"}, "password": {"nope"}})
		unknown := other.post("/login", url.Values{"username": {"mallory"}, "password": {"nope"}})

		for _, p := range []page{wrongPw, unknown} {
			assert.Equal(t, http.StatusUnauthorized, p.status)
			assert.Contains(t, p.body, "Invalid credentials")
		}

		p := other.get("/favorites")
		assert.Equal(t, "/login", p.path)
	})

	t.Run("Logout", func(t *testing.T) {
		p := b.post("/logout", nil)
		assert.Equal(t, "/", p.path)

		p = b.get("/favorites")
		assert.Equal(t, "/login", p.path)
	})
}

func TestRecipeDetail(t *testing.T) {
	app := newTestApp(t)
	b := app.newBrowser(t)
	b.signupAndLogin("alice", "s3cret")

	p := b.get("/recipes/641803")
	assert.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, "A quick dinner.")
	assert.Contains(t, p.body, "<li>Boil pasta.</li>")
	assert.Contains(t, p.body, "200g pasta")
	assert.NotContains(t, p.body, "<b>quick</b>")

	p = b.get("/recipes/1")
	assert.Equal(t, "/", p.path)
	assert.Contains(t, p.body, "Recipe details are unavailable right now.")

	p = b.get("/recipes/abc")
	assert.Equal(t, http.StatusNotFound, p.status)
}

func TestFavorites(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)

	alice := app.newBrowser(t)
	alice.signupAndLogin("alice", "s3cret")
	bob := app.newBrowser(t)
	bob.signupAndLogin("bob", "hunter2")

	p := alice.post("/favorites", url.Values{
		"recipe_id": {"641803"},
		"title":     {"Easy Tomato Pasta"},
		"image":     {"https://img.test/641803.jpg"},
	})
	assert.Equal(t, "/favorites", p.path)
	assert.Contains(t, p.body, "Added to favorites!")
	assert.Contains(t, p.body, "Easy Tomato Pasta")

	aliceAcc, err := app.accounts.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	favs, err := app.favorites.For(aliceAcc.ID).List(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	favID := strconv.FormatInt(favs[0].ID, 10)

	t.Run("OtherAccountCannotRemove", func(t *testing.T) {
		p := bob.post("/favorites/"+favID+"/delete", nil)
		assert.Equal(t, http.StatusOK, p.status)
		assert.NotContains(t, p.body, "Removed from favorites!")
		assert.NotContains(t, p.body, "Easy Tomato Pasta")

		favs, err := app.favorites.For(aliceAcc.ID).List(ctx)
		require.NoError(t, err)
		assert.Len(t, favs, 1)
	})

	t.Run("OwnerRemoves", func(t *testing.T) {
		p := alice.post("/favorites/"+favID+"/delete", nil)
		assert.Contains(t, p.body, "Removed from favorites!")
		assert.Contains(t, p.body, "You have no favorites yet.")
	})

	t.Run("MissingFields", func(t *testing.T) {
		p := alice.post("/favorites", url.Values{"recipe_id": {"x"}})
		assert.Equal(t, "/", p.path)
		assert.Contains(t, p.body, "Could not add favorite")
	})
}

func TestShoppingList(t *testing.T) {
	ctx := context.Background()
	app := newTestApp(t)

	alice := app.newBrowser(t)
	alice.signupAndLogin("alice", "s3cret")
	bob := app.newBrowser(t)
	bob.signupAndLogin("bob", "hunter2")

	p := alice.post("/shopping-list/generate", url.Values{"recipe_ids": {"641803", "999"}})
	assert.Equal(t, "/shopping-list", p.path)
	assert.Contains(t, p.body, "Shopping list generated!")
	assert.Contains(t, p.body, "200 200g pasta")
	assert.Contains(t, p.body, "2 2 tomatoes")

	bobAcc, err := app.accounts.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	require.NoError(t, app.shopping.For(bobAcc.ID).Append(ctx, []shopping.Item{{Ingredient: "cheese", Quantity: "1"}}))

	t.Run("NothingSelected", func(t *testing.T) {
		p := alice.post("/shopping-list/generate", url.Values{})
		assert.Equal(t, "/", p.path)
		assert.Contains(t, p.body, "Select at least one recipe")
	})

	t.Run("InvalidID", func(t *testing.T) {
		p := alice.post("/shopping-list/generate", url.Values{"recipe_ids": {"abc"}})
		assert.Equal(t, http.StatusBadRequest, p.status)
	})

	t.Run("ClearIsScoped", func(t *testing.T) {
		p := alice.post("/shopping-list/clear", nil)
		assert.Contains(t, p.body, "List cleared!")
		assert.Contains(t, p.body, "Your shopping list is empty.")

		p = bob.get("/shopping-list")
		assert.Contains(t, p.body, "cheese")
	})
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	resp, err := http.Get(app.server.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Zero(t, body.APICallsToday)
	assert.NotEmpty(t, body.System.DataDiskSize)
}

func TestNotFound(t *testing.T) {
	app := newTestApp(t)
	p := app.newBrowser(t).get("/does-not-exist")
	assert.Equal(t, http.StatusNotFound, p.status)
	assert.Contains(t, p.body, "Not found")
}
