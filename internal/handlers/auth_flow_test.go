// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// auth_flow_test.go exercises the sign-in and sign-out handlers against a
// real database and Valkey; tests skip when those services are unavailable.
package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"

	"groundwork/internal/session"
)

func TestLoginPage_ReturnsHTML(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	rec := httptest.NewRecorder()

	env.Auth.LoginPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("Content-Type: got %q, want text/html", ct)
	}
	if !strings.Contains(rec.Body.String(), "Sign In") {
		t.Error("login page content missing")
	}
}

func TestLoginPage_AuthenticatedRedirects(t *testing.T) {
	env := newTestEnv(t)

	sess := testSession(uuid.New(), "admin@groundwork.local")
	req := httptest.NewRequest(http.MethodGet, "/admin/login", nil)
	req = req.WithContext(ctxWithSession(req.Context(), sess))
	rec := httptest.NewRecorder()

	env.Auth.LoginPage(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("Location: got %q, want /admin", loc)
	}
}

func TestLoginSubmit_ValidCredentials(t *testing.T) {
	env := newTestEnv(t)

	// The seeded admin account signs in with the development password.
	user, err := env.Users.FindByEmail("admin@groundwork.local")
	if err != nil || user == nil {
		t.Skip("skipping: default admin account not found — run seed first")
	}
	if !env.Users.CheckPassword(user, "admin") {
		t.Skip("skipping: default admin password has been changed")
	}

	form := url.Values{}
	form.Set("email", "admin@groundwork.local")
	form.Set("password", "admin")

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	env.Auth.LoginSubmit(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin" {
		t.Errorf("Location: got %q, want /admin", loc)
	}

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("expected %s cookie to be set after successful login", session.CookieName)
	}
}

func TestLoginSubmit_WrongPassword(t *testing.T) {
	env := newTestEnv(t)

	user, err := env.Users.FindByEmail("admin@groundwork.local")
	if err != nil || user == nil {
		t.Skip("skipping: default admin account not found — run seed first")
	}

	form := url.Values{}
	form.Set("email", "admin@groundwork.local")
	form.Set("password", "wrong-password-definitely-not-correct")

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	env.Auth.LoginSubmit(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "Invalid email or password") {
		t.Error("expected generic error message in response body")
	}
}

func TestLoginSubmit_UnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	form := url.Values{}
	form.Set("email", "nonexistent-user-xyz@example.com")
	form.Set("password", "irrelevant")

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	env.Auth.LoginSubmit(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	// Unknown email and wrong password must be indistinguishable.
	if !strings.Contains(rec.Body.String(), "Invalid email or password") {
		t.Error("expected generic error message in response body")
	}
}

func TestLoginSubmit_DeactivatedAccount(t *testing.T) {
	env := newTestEnv(t)

	email := "revoked-" + uuid.New().String()[:8] + "@groundwork.local"
	t.Cleanup(func() { cleanAdminUsers(t, env.DB, email) })

	user, err := env.Users.Create(email, "a-long-enough-password", "Revoked User")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := env.Users.SetActive(user.ID, false); err != nil {
		t.Fatalf("deactivate user: %v", err)
	}

	form := url.Values{}
	form.Set("email", email)
	form.Set("password", "a-long-enough-password")

	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	env.Auth.LoginSubmit(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "Invalid email or password") {
		t.Error("deactivated account should get the same generic error")
	}
}

func TestForgotPage_ReturnsForm(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/forgot", nil)
	rec := httptest.NewRecorder()

	env.Auth.ForgotPage(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Reset Password") {
		t.Error("forgot page content missing")
	}
}

func TestForgotSubmit_SameResponseForAnyEmail(t *testing.T) {
	env := newTestEnv(t)

	submit := func(email string) string {
		form := url.Values{"email": {email}}
		req := httptest.NewRequest(http.MethodPost, "/admin/forgot", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		env.Auth.ForgotSubmit(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status for %q: got %d, want %d", email, rec.Code, http.StatusOK)
		}
		return rec.Body.String()
	}

	known := submit("admin@groundwork.local")
	unknown := submit("nobody-here@example.com")

	// Responses must not reveal whether the account exists.
	if known != unknown {
		t.Error("forgot responses differ between known and unknown accounts")
	}
	if !strings.Contains(known, "administrator has been notified") {
		t.Error("expected confirmation message in response body")
	}
}

func TestLogout_RedirectsToLogin(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/logout", nil)
	rec := httptest.NewRecorder()

	env.Auth.Logout(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusSeeOther)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("Location: got %q, want /admin/login", loc)
	}
}
