package web

import (
	"errors"
	"net/http"

	"github.com/apex/log"

	"recipe-finder/internal/account"
	"recipe-finder/internal/session"
)

func loginView(username, errMsg string) *authView {
	return &authView{Page: Page{Title: "Login"}, Action: "/login", Username: username, Error: errMsg}
}

func signupView(username, errMsg string) *authView {
	return &authView{Page: Page{Title: "Signup"}, Action: "/signup", Username: username, Error: errMsg}
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "auth.html", loginView("", ""))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	acc, err := s.Accounts.Login(r.Context(), username, r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, account.ErrInvalidCredentials) {
			s.render(w, r, http.StatusUnauthorized, "auth.html", loginView(username, "Invalid credentials"))
			return
		}
		s.serverError(w, r, err)
		return
	}

	if err := s.Sessions.Issue(w, session.Account{ID: acc.ID, Username: acc.Username}); err != nil {
		s.serverError(w, r, err)
		return
	}

	log.WithField("account_id", acc.ID).Info("logged in")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSignupForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "auth.html", signupView("", ""))
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	_, err := s.Accounts.Signup(r.Context(), username, r.PostFormValue("password"))
	switch {
	case err == nil:
		redirectWithFlash(w, r, "/login", "Account created!")
	case errors.Is(err, account.ErrUsernameTaken):
		s.render(w, r, http.StatusConflict, "auth.html", signupView(username, "That username is already taken."))
	case errors.Is(err, account.ErrInvalidUsername):
		s.render(w, r, http.StatusBadRequest, "auth.html", signupView(username, "Username must be between 1 and 150 characters."))
	case errors.Is(err, account.ErrInvalidPassword):
		s.render(w, r, http.StatusBadRequest, "auth.html", signupView(username, "Password must be between 1 and 72 bytes."))
	default:
		s.serverError(w, r, err)
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.Sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
