// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"groundwork/internal/middleware"
	"groundwork/internal/render"
)

// minPasswordLength mirrors the form's client-side minimum.
const minPasswordLength = 12

// UsersPage lists staff accounts with the add form.
func (h *Admin) UsersPage(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		h.serverError(w, "list users", err)
		return
	}
	h.render.Page(w, r, "users", &render.PageData{
		Title:   "Staff",
		Section: "users",
		Data:    map[string]any{"Users": users},
	})
}

// UserCreate adds a staff account to the allow-list.
func (h *Admin) UserCreate(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")
	displayName := strings.TrimSpace(r.FormValue("display_name"))

	if !validEmail(email) || displayName == "" || len(password) < minPasswordLength {
		http.Error(w, "email, name, and a 12+ character password are required", http.StatusBadRequest)
		return
	}

	user, err := h.users.Create(email, password, displayName)
	if err != nil {
		h.serverError(w, "create user", err)
		return
	}
	slog.Info("staff account created", "email", user.Email)
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

// UserSetActive revokes or restores back-office access via ?on=. Admins
// cannot revoke their own account, which would lock everyone out one
// click at a time.
func (h *Admin) UserSetActive(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	on := r.URL.Query().Get("on") == "true"

	if sess := middleware.SessionFromCtx(r.Context()); sess != nil && sess.UserID == id && !on {
		http.Error(w, "cannot revoke your own account", http.StatusBadRequest)
		return
	}

	if err := h.users.SetActive(id, on); err != nil {
		h.serverError(w, "set user active", err)
		return
	}
	slog.Info("staff access changed", "user_id", id, "active", on)
	h.UsersPage(w, r)
}
