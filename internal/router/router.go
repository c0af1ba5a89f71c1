// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// Groundwork site. It organizes routes into public and admin groups with
// appropriate middleware stacks.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"groundwork/internal/handlers"
	"groundwork/internal/middleware"
	"groundwork/internal/session"
	"groundwork/web"
)

// Options carries the dependencies the router wires together.
type Options struct {
	Sessions *session.Store
	Allow    middleware.AllowList
	Auth     *handlers.Auth
	Admin    *handlers.Admin
	Public   *handlers.Public

	// Secure marks CSRF cookies Secure; set behind TLS.
	Secure bool

	// LoginLimiter throttles credential guessing on the login endpoint.
	LoginLimiter *middleware.RateLimiter
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.LoadSession(opts.Sessions))

	// Health check — no auth, no CSRF.
	r.Get("/health", healthHandler)

	// Embedded static assets (compiled CSS, vendored JS).
	staticFS, err := fs.Sub(web.StaticFS, "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	csrf := middleware.NewCSRF(opts.Secure)

	// Admin routes — CSRF everywhere, allow-list behind the login pages.
	r.Route("/admin", func(r chi.Router) {
		r.Use(csrf)

		// Auth pages — accessible without a session.
		r.Group(func(r chi.Router) {
			if opts.LoginLimiter != nil {
				r.Use(opts.LoginLimiter.Middleware)
			}
			r.Get("/login", opts.Auth.LoginPage)
			r.Post("/login", opts.Auth.LoginSubmit)
			r.Get("/forgot", opts.Auth.ForgotPage)
			r.Post("/forgot", opts.Auth.ForgotSubmit)
		})
		r.Post("/logout", opts.Auth.Logout)

		// Back office — every request re-checked against the allow-list.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(opts.Sessions, opts.Allow))

			r.Get("/", opts.Admin.Dashboard)

			// Categories (project, gallery, and department tabs)
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", opts.Admin.CategoriesPage)
				r.Post("/", opts.Admin.CategoryCreate)
				r.Post("/{id}/move", opts.Admin.CategoryMove)
				r.Delete("/{id}", opts.Admin.CategoryDelete)
			})

			// Projects
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", opts.Admin.ProjectsList)
				r.Get("/new", opts.Admin.ProjectNew)
				r.Post("/", opts.Admin.ProjectCreate)
				r.Get("/{id}/edit", opts.Admin.ProjectEdit)
				r.Post("/{id}", opts.Admin.ProjectUpdate)
				r.Post("/{id}/feature", opts.Admin.ProjectFeature)
				r.Delete("/{id}", opts.Admin.ProjectDelete)
			})

			// Clients
			r.Route("/clients", func(r chi.Router) {
				r.Get("/", opts.Admin.ClientsPage)
				r.Post("/", opts.Admin.ClientCreate)
				r.Get("/{id}/edit", opts.Admin.ClientEdit)
				r.Post("/{id}", opts.Admin.ClientUpdate)
				r.Delete("/{id}", opts.Admin.ClientDelete)
			})

			// Gallery albums and images
			r.Route("/albums", func(r chi.Router) {
				r.Get("/", opts.Admin.AlbumsList)
				r.Get("/new", opts.Admin.AlbumNew)
				r.Post("/", opts.Admin.AlbumCreate)
				r.Get("/{id}/edit", opts.Admin.AlbumEdit)
				r.Post("/{id}", opts.Admin.AlbumUpdate)
				r.Delete("/{id}", opts.Admin.AlbumDelete)
				r.Get("/{id}/images", opts.Admin.AlbumImages)
				r.Post("/{id}/images", opts.Admin.ImageUpload)
			})
			r.Route("/images", func(r chi.Router) {
				r.Post("/{id}/move", opts.Admin.ImageMove)
				r.Post("/{id}/feature", opts.Admin.ImageFeature)
				r.Delete("/{id}", opts.Admin.ImageDelete)
			})

			// Job postings and applications
			r.Route("/jobs", func(r chi.Router) {
				r.Get("/", opts.Admin.JobsList)
				r.Get("/new", opts.Admin.JobNew)
				r.Post("/", opts.Admin.JobCreate)
				r.Get("/{id}/edit", opts.Admin.JobEdit)
				r.Post("/{id}", opts.Admin.JobUpdate)
				r.Delete("/{id}", opts.Admin.JobDelete)
			})
			r.Route("/applications", func(r chi.Router) {
				r.Get("/", opts.Admin.ApplicationsList)
				r.Post("/{id}/status", opts.Admin.ApplicationStatus)
				r.Delete("/{id}", opts.Admin.ApplicationDelete)
			})

			// Contact submissions
			r.Route("/contacts", func(r chi.Router) {
				r.Get("/", opts.Admin.ContactsList)
				r.Post("/{id}/status", opts.Admin.ContactStatus)
				r.Delete("/{id}", opts.Admin.ContactDelete)
			})

			// Fleet
			r.Route("/equipment", func(r chi.Router) {
				r.Get("/", opts.Admin.EquipmentPage)
				r.Post("/", opts.Admin.EquipmentCreate)
				r.Get("/{id}/edit", opts.Admin.EquipmentEdit)
				r.Post("/{id}", opts.Admin.EquipmentUpdate)
				r.Post("/{id}/move", opts.Admin.EquipmentMove)
				r.Delete("/{id}", opts.Admin.EquipmentDelete)
			})

			// Staff accounts
			r.Route("/users", func(r chi.Router) {
				r.Get("/", opts.Admin.UsersPage)
				r.Post("/", opts.Admin.UserCreate)
				r.Post("/{id}/active", opts.Admin.UserSetActive)
			})
		})
	})

	// Public site. The contact and application forms sit behind CSRF.
	r.Group(func(r chi.Router) {
		r.Use(csrf)

		r.Get("/", opts.Public.Home)
		r.Get("/about", opts.Public.About)
		r.Get("/projects", opts.Public.Projects)
		r.Get("/projects/{slug}", opts.Public.ProjectDetail)
		r.Get("/gallery", opts.Public.Gallery)
		r.Get("/gallery/{slug}", opts.Public.Album)
		r.Get("/clients", opts.Public.Clients)
		r.Get("/fleet", opts.Public.Fleet)
		r.Get("/careers", opts.Public.Careers)
		r.Get("/careers/{slug}", opts.Public.JobDetail)
		r.Post("/careers/{slug}/apply", opts.Public.JobApply)
		r.Get("/contact", opts.Public.ContactPage)
		r.Post("/contact", opts.Public.ContactSubmit)
	})

	r.NotFound(opts.Public.NotFound)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
