package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "home.html", &searchView{})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.PostFormValue("ingredients"))
	results := s.Recipes.FindByIngredients(r.Context(), strings.Split(query, ","))

	s.render(w, r, http.StatusOK, "home.html", &searchView{
		Page:     Page{Title: "Search"},
		Query:    query,
		Searched: true,
		Results:  results,
	})
}

func (s *Server) handleRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		s.notFound(w, r)
		return
	}

	detail, ok := s.Recipes.GetDetails(r.Context(), id)
	if !ok {
		redirectWithFlash(w, r, "/", "Recipe details are unavailable right now.")
		return
	}

	ingredients := make([]string, 0, len(detail.ExtendedIngredients))
	for _, ing := range detail.ExtendedIngredients {
		ingredients = append(ingredients, ing.Original)
	}

	s.render(w, r, http.StatusOK, "recipe.html", &recipeView{
		Page:        Page{Title: detail.Title},
		Recipe:      detail,
		Summary:     detail.PlainSummary(),
		Steps:       detail.Steps(),
		Ingredients: ingredients,
	})
}
