package web

import (
	"net/http"
	"strconv"
	"strings"
)

func (s *Server) handleShoppingList(w http.ResponseWriter, r *http.Request) {
	items, err := s.Shopping.For(currentAccount(r).ID).Items(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "shopping.html", &shoppingView{
		Page:  Page{Title: "Shopping List"},
		Items: items,
	})
}

func (s *Server) handleGenerateList(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	var ids []int64
	for _, raw := range r.PostForm["recipe_ids"] {
		id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid recipe id", http.StatusBadRequest)
			return
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		redirectWithFlash(w, r, "/", "Select at least one recipe to build a shopping list.")
		return
	}

	if _, err := s.Generator.Generate(r.Context(), currentAccount(r).ID, ids); err != nil {
		s.serverError(w, r, err)
		return
	}
	redirectWithFlash(w, r, "/shopping-list", "Shopping list generated!")
}

func (s *Server) handleClearList(w http.ResponseWriter, r *http.Request) {
	if _, err := s.Shopping.For(currentAccount(r).ID).Clear(r.Context()); err != nil {
		s.serverError(w, r, err)
		return
	}
	redirectWithFlash(w, r, "/shopping-list", "List cleared!")
}
