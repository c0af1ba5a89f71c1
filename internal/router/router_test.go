// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"groundwork/internal/handlers"
	"groundwork/internal/render"
	"groundwork/internal/session"
)

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

// testRouter builds a router whose handlers carry only the renderer.
// Routes that hit the database are not exercised here; the session store
// never reaches Valkey for cookieless requests.
func testRouter(t *testing.T) http.Handler {
	t.Helper()
	rn, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	sessions := session.NewStore(nil, false)
	return New(Options{
		Sessions: sessions,
		Allow:    allowNone{},
		Auth:     handlers.NewAuth(sessions, nil, rn),
		Admin:    handlers.NewAdmin(handlers.AdminStores{}, nil, nil, rn),
		Public:   handlers.NewPublic(handlers.PublicStores{}, nil, nil, rn),
	})
}

type allowNone struct{}

func (allowNone) IsAllowed(uuid.UUID) (bool, error) { return false, nil }

func TestRouterHealthRoute(t *testing.T) {
	h := testRouter(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	if w.Code != http.StatusOK {
		t.Errorf("GET /health: got %d, want 200", w.Code)
	}
}

func TestRouterAdminRequiresSession(t *testing.T) {
	h := testRouter(t)

	paths := []string{"/admin/", "/admin/projects/", "/admin/albums/", "/admin/users/"}
	for _, p := range paths {
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest("GET", p, nil))

		if w.Code != http.StatusSeeOther {
			t.Errorf("GET %s without session: got %d, want 303", p, w.Code)
			continue
		}
		if loc := w.Header().Get("Location"); loc != "/admin/login" {
			t.Errorf("GET %s: redirect to %q, want /admin/login", p, loc)
		}
	}
}

func TestRouterLoginPageReachable(t *testing.T) {
	h := testRouter(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/admin/login", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("GET /admin/login: got %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Sign In") {
		t.Error("login page content missing")
	}
}

func TestRouterNotFound(t *testing.T) {
	h := testRouter(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", "/no-such-page", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("unknown path: got %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Page not found") {
		t.Error("404 page content missing")
	}
}

func TestRouterPublicPostRequiresCSRF(t *testing.T) {
	h := testRouter(t)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("POST", "/contact", nil))

	if w.Code != http.StatusForbidden {
		t.Errorf("POST /contact without token: got %d, want 403", w.Code)
	}
}
