package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/apex/log"

	"recipe-finder/internal/favorites"
	"recipe-finder/internal/recipe"
	"recipe-finder/internal/session"
	"recipe-finder/internal/shopping"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = []string{
	"home.html",
	"recipe.html",
	"favorites.html",
	"shopping.html",
	"auth.html",
	"error.html",
}

// Page holds the fields every view renders in the layout.
type Page struct {
	Title   string
	Account *session.Account
	Flash   string
}

func (p *Page) page() *Page { return p }

type view interface {
	page() *Page
}

type searchView struct {
	Page
	Query    string
	Searched bool
	Results  []recipe.Summary
}

type recipeView struct {
	Page
	Recipe      recipe.Detail
	Summary     string
	Steps       []string
	Ingredients []string
}

type favoritesView struct {
	Page
	Favorites []favorites.Favorite
}

type shoppingView struct {
	Page
	Items []shopping.Item
}

type authView struct {
	Page
	Action   string
	Username string
	Error    string
}

type errorView struct {
	Page
	Message string
}

func parseTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pageTemplates))
	for _, name := range pageTemplates {
		t, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		templates[name] = t
	}
	return templates, nil
}

// render executes the page into a buffer before writing status and body.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, v view) {
	p := v.page()
	if acc, ok := session.FromContext(r.Context()); ok {
		p.Account = &acc
	}
	if p.Flash == "" {
		p.Flash = popFlash(w, r)
	}

	t, ok := s.templates[name]
	if !ok {
		log.WithField("template", name).Error("unknown template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", v); err != nil {
		log.WithError(err).WithField("template", name).Error("failed to render template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.WithError(err).Debug("failed to write response")
	}
}

// serverError logs err and renders a generic error page.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	log.WithError(err).WithFields(log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Error("request failed")

	s.render(w, r, http.StatusInternalServerError, "error.html", &errorView{
		Page:    Page{Title: "Something went wrong"},
		Message: "We could not complete your request. Please try again later.",
	})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "error.html", &errorView{
		Page:    Page{Title: "Not found"},
		Message: "The page you were looking for does not exist.",
	})
}
