package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/go-chi/chi/v5"

	"recipe-finder/internal/favorites"
)

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	favs, err := s.Favorites.For(currentAccount(r).ID).List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "favorites.html", &favoritesView{
		Page:      Page{Title: "Favorites"},
		Favorites: favs,
	})
}

func (s *Server) handleAddFavorite(w http.ResponseWriter, r *http.Request) {
	recipeID, err := strconv.ParseInt(r.PostFormValue("recipe_id"), 10, 64)
	title := strings.TrimSpace(r.PostFormValue("title"))
	if err != nil || recipeID <= 0 || title == "" {
		redirectWithFlash(w, r, "/", "Could not add favorite: missing recipe information.")
		return
	}

	acc := currentAccount(r)
	fav, err := s.Favorites.For(acc.ID).Add(r.Context(), favorites.Favorite{
		RecipeID: recipeID,
		Title:    title,
		Image:    strings.TrimSpace(r.PostFormValue("image")),
	})
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	log.WithFields(log.Fields{"account_id": acc.ID, "favorite_id": fav.ID, "recipe_id": recipeID}).Info("favorite added")
	redirectWithFlash(w, r, "/favorites", "Added to favorites!")
}

func (s *Server) handleRemoveFavorite(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		redirectWithFlash(w, r, "/favorites", "")
		return
	}

	removed, err := s.Favorites.For(currentAccount(r).ID).Remove(r.Context(), id)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	msg := ""
	if removed {
		msg = "Removed from favorites!"
	}
	redirectWithFlash(w, r, "/favorites", msg)
}
