package web

import (
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"recipe-finder/internal/account"
	"recipe-finder/internal/config"
	"recipe-finder/internal/favorites"
	"recipe-finder/internal/metrics"
	"recipe-finder/internal/session"
	"recipe-finder/internal/shopping"
	"recipe-finder/internal/spoonacular"
)

// Services are the collaborators the handlers depend on.
type Services struct {
	Accounts  *account.Service
	Recipes   spoonacular.Client
	Favorites *favorites.Repository
	Shopping  *shopping.Repository
	Generator *shopping.Generator
	Metrics   *metrics.Store
	Sessions  *session.Manager
}

// Server is the HTML front end of the application.
type Server struct {
	Services
	cfg       *config.Config
	templates map[string]*template.Template
}

// NewServer creates a new Server and parses the embedded templates.
func NewServer(cfg *config.Config, svc Services) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Server{
		Services:  svc,
		cfg:       cfg,
		templates: templates,
	}, nil
}

// Routes builds the HTTP handler for the whole application.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	if len(s.cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Use(s.Sessions.Middleware)
	r.NotFound(s.notFound)

	// Public
	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleHome)
	r.Post("/", s.handleSearch)
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLogin)
	r.Get("/signup", s.handleSignupForm)
	r.Post("/signup", s.handleSignup)
	r.Post("/logout", s.handleLogout)

	// Account-scoped
	r.Group(func(r chi.Router) {
		r.Use(session.RequireAccount)
		r.Get("/recipes/{id}", s.handleRecipe)

		r.Get("/favorites", s.handleFavorites)
		r.Post("/favorites", s.handleAddFavorite)
		r.Post("/favorites/{id}/delete", s.handleRemoveFavorite)

		r.Get("/shopping-list", s.handleShoppingList)
		r.Post("/shopping-list/generate", s.handleGenerateList)
		r.Post("/shopping-list/clear", s.handleClearList)
	})

	return r
}

// dataDir is the directory holding the database files.
func (s *Server) dataDir() string {
	return filepath.Dir(s.cfg.DatabasePath)
}

// currentAccount returns the account set by session.RequireAccount.
func currentAccount(r *http.Request) session.Account {
	acc, _ := session.FromContext(r.Context())
	return acc
}
