// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"groundwork/internal/middleware"
	"groundwork/internal/render"
	"groundwork/internal/session"
	"groundwork/internal/store"
)

// Auth handles admin sign-in and sign-out.
type Auth struct {
	sessions *session.Store
	users    *store.AdminUserStore
	render   *render.Renderer
}

// NewAuth creates the auth handler group.
func NewAuth(sessions *session.Store, users *store.AdminUserStore, rn *render.Renderer) *Auth {
	return &Auth{sessions: sessions, users: users, render: rn}
}

// LoginPage renders the sign-in form. Already-authenticated users are sent
// straight to the dashboard.
func (h *Auth) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.SessionFromCtx(r.Context()) != nil {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	h.render.Page(w, r, "login", &render.PageData{
		Title: "Sign In",
		Data:  map[string]any{},
	})
}

// LoginSubmit validates credentials against the staff table. Failed
// attempts re-render the form with a generic error so the response does
// not reveal whether the email exists.
func (h *Auth) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	fail := func() {
		w.WriteHeader(http.StatusUnauthorized)
		h.render.Page(w, r, "login", &render.PageData{
			Title: "Sign In",
			Data:  map[string]any{"Error": "Invalid email or password."},
		})
	}

	user, err := h.users.FindByEmail(email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if user == nil || !h.users.CheckPassword(user, password) {
		slog.Info("login rejected", "email", email)
		fail()
		return
	}
	if !user.IsActive {
		slog.Info("login rejected for deactivated account", "email", email)
		fail()
		return
	}

	_, err = h.sessions.Create(r.Context(), w, &session.Data{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		CreatedAt:   time.Now(),
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	slog.Info("admin signed in", "email", user.Email)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// ForgotPage renders the password-reset request form.
func (h *Auth) ForgotPage(w http.ResponseWriter, r *http.Request) {
	h.render.Page(w, r, "forgot", &render.PageData{
		Title: "Reset Password",
		Data:  map[string]any{},
	})
}

// ForgotSubmit logs the reset request for the site operator, who resets
// the password by hand — there is no mailer. The confirmation is the same
// whether or not the account exists.
func (h *Auth) ForgotSubmit(w http.ResponseWriter, r *http.Request) {
	if email := strings.TrimSpace(r.FormValue("email")); email != "" {
		slog.Info("password reset requested", "email", email)
	}
	h.render.Page(w, r, "forgot", &render.PageData{
		Title: "Reset Password",
		Data:  map[string]any{"Submitted": true},
	})
}

// Logout destroys the session and returns to the login page.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		slog.Warn("session destroy failed", "error", err)
	}
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
