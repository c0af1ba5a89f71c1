// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"groundwork/internal/cache"
	"groundwork/internal/database"
	"groundwork/internal/middleware"
	"groundwork/internal/render"
	"groundwork/internal/session"
	"groundwork/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL, runs migrations, and
// seeds the default admin account and Project Sites category.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "groundwork")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "groundwork")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	if err := database.Seed(db); err != nil {
		db.Close()
		t.Fatalf("seed: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session and cache keys.
		for _, pattern := range []string{"session:*", "page:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB         *sql.DB
	Valkey     *redis.Client
	Renderer   *render.Renderer
	Sessions   *session.Store
	Categories *store.CategoryStore
	Projects   *store.ProjectStore
	Clients    *store.ClientStore
	Albums     *store.AlbumStore
	Images     *store.GalleryImageStore
	Jobs       *store.JobStore
	Apps       *store.ApplicationStore
	Contacts   *store.ContactStore
	Users      *store.AdminUserStore
	Equipment  *store.EquipmentStore
	PageCache  *cache.PageCache
	Admin      *Admin
	Auth       *Auth
	Public     *Public
}

// newTestEnv creates a complete test environment with all handler
// dependencies. Object storage is left unconfigured; upload paths respond
// with 503 and the rest of the handlers run without it.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	renderer, err := render.New(true)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	sessions := session.NewStore(vk, false)
	env := &testEnv{
		DB:         db,
		Valkey:     vk,
		Renderer:   renderer,
		Sessions:   sessions,
		Categories: store.NewCategoryStore(db),
		Projects:   store.NewProjectStore(db),
		Clients:    store.NewClientStore(db),
		Albums:     store.NewAlbumStore(db),
		Images:     store.NewGalleryImageStore(db),
		Jobs:       store.NewJobStore(db),
		Apps:       store.NewApplicationStore(db),
		Contacts:   store.NewContactStore(db),
		Users:      store.NewAdminUserStore(db),
		Equipment:  store.NewEquipmentStore(db),
		PageCache:  cache.NewPageCache(vk, 1*time.Minute),
	}

	adminStores := AdminStores{
		Categories: env.Categories,
		Projects:   env.Projects,
		Clients:    env.Clients,
		Albums:     env.Albums,
		Images:     env.Images,
		Jobs:       env.Jobs,
		Apps:       env.Apps,
		Contacts:   env.Contacts,
		Users:      env.Users,
		Equipment:  env.Equipment,
	}
	publicStores := PublicStores{
		Categories: env.Categories,
		Projects:   env.Projects,
		Clients:    env.Clients,
		Albums:     env.Albums,
		Images:     env.Images,
		Jobs:       env.Jobs,
		Apps:       env.Apps,
		Contacts:   env.Contacts,
		Equipment:  env.Equipment,
	}

	env.Admin = NewAdmin(adminStores, nil, env.PageCache, renderer)
	env.Auth = NewAuth(sessions, env.Users, renderer)
	env.Public = NewPublic(publicStores, nil, env.PageCache, renderer)
	return env
}

// ctxWithSession adds session data to a context using the middleware key.
func ctxWithSession(ctx context.Context, data *session.Data) context.Context {
	return context.WithValue(ctx, middleware.SessionKey, data)
}

// testSession creates a session.Data for testing.
func testSession(userID uuid.UUID, email string) *session.Data {
	return &session.Data{
		UserID:      userID,
		Email:       email,
		DisplayName: "Test User",
		CreatedAt:   time.Now(),
	}
}

// seededAdminID returns the ID of the seeded admin account.
func seededAdminID(t *testing.T, db *sql.DB) uuid.UUID {
	t.Helper()
	var id uuid.UUID
	if err := db.QueryRow("SELECT id FROM admin_users LIMIT 1").Scan(&id); err != nil {
		t.Fatalf("no admin accounts in database — run seed first: %v", err)
	}
	return id
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// withChiURLParamAndSession adds both a chi URL param and a session.
func withChiURLParamAndSession(r *http.Request, key, value string, sess *session.Data) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.SessionKey, sess)
	return r.WithContext(ctx)
}

// cleanCategories removes test categories by name. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		db.Exec("DELETE FROM categories WHERE name = $1", name)
	}
}

// cleanProjects removes test projects by slug. Call in t.Cleanup().
func cleanProjects(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM projects WHERE slug = $1", slug)
	}
}

// cleanAlbums removes test albums by slug. Call in t.Cleanup().
func cleanAlbums(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM albums WHERE slug = $1", slug)
	}
}

// cleanJobs removes test postings by slug. Call in t.Cleanup().
func cleanJobs(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM job_postings WHERE slug = $1", slug)
	}
}

// cleanContacts removes test submissions by email. Call in t.Cleanup().
func cleanContacts(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM contact_submissions WHERE email = $1", email)
	}
}

// cleanAdminUsers removes test accounts by email. Call in t.Cleanup().
func cleanAdminUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM admin_users WHERE email = $1", email)
	}
}
