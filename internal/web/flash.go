package web

import (
	"encoding/base64"
	"net/http"
)

const flashCookieName = "recipe_finder_flash"

// setFlash stores a one-shot status message for the next rendered page.
func setFlash(w http.ResponseWriter, msg string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(msg)),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending message, if any, and clears it.
func popFlash(w http.ResponseWriter, r *http.Request) string {
	c, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	msg, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return ""
	}
	return string(msg)
}

// redirectWithFlash sets msg and redirects to target with 303 See Other.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, target, msg string) {
	if msg != "" {
		setFlash(w, msg)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
