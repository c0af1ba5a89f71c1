// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"groundwork/internal/cache"
	"groundwork/internal/render"
	"groundwork/internal/storage"
	"groundwork/internal/store"
)

// Admin bundles the stores and services the back-office handlers need.
type Admin struct {
	categories *store.CategoryStore
	projects   *store.ProjectStore
	clients    *store.ClientStore
	albums     *store.AlbumStore
	images     *store.GalleryImageStore
	jobs       *store.JobStore
	apps       *store.ApplicationStore
	contacts   *store.ContactStore
	users      *store.AdminUserStore
	equipment  *store.EquipmentStore

	storage *storage.Client
	pages   *cache.PageCache
	render  *render.Renderer
}

// AdminStores groups the store dependencies for NewAdmin.
type AdminStores struct {
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
}

// NewAdmin creates the admin handler group.
func NewAdmin(s AdminStores, st *storage.Client, pages *cache.PageCache, rn *render.Renderer) *Admin {
	return &Admin{
		categories: s.Categories,
		projects:   s.Projects,
		clients:    s.Clients,
		albums:     s.Albums,
		images:     s.Images,
		jobs:       s.Jobs,
		apps:       s.Apps,
		contacts:   s.Contacts,
		users:      s.Users,
		equipment:  s.Equipment,
		storage:    st,
		pages:      pages,
		render:     rn,
	}
}

// Dashboard shows content counts and pending triage work.
func (h *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	projectCount, err := h.projects.Count()
	if err != nil {
		h.serverError(w, "count projects", err)
		return
	}
	featuredCount, err := h.projects.CountFeatured()
	if err != nil {
		h.serverError(w, "count featured", err)
		return
	}
	albumCount, err := h.albums.Count()
	if err != nil {
		h.serverError(w, "count albums", err)
		return
	}
	imageCount, err := h.images.Count()
	if err != nil {
		h.serverError(w, "count images", err)
		return
	}
	newApps, err := h.apps.CountNew()
	if err != nil {
		h.serverError(w, "count applications", err)
		return
	}
	newContacts, err := h.contacts.CountNew()
	if err != nil {
		h.serverError(w, "count contacts", err)
		return
	}

	h.render.Page(w, r, "dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data: map[string]any{
			"ProjectCount":        projectCount,
			"FeaturedCount":       featuredCount,
			"AlbumCount":          albumCount,
			"ImageCount":          imageCount,
			"NewApplicationCount": newApps,
			"NewContactCount":     newContacts,
		},
	})
}

// serverError logs the failure and returns a plain 500.
func (h *Admin) serverError(w http.ResponseWriter, op string, err error) {
	slog.Error("admin handler error", "op", op, "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// publicURL resolves a public-bucket S3 key to a servable URL, tolerating
// a nil key and an unconfigured storage client.
func (h *Admin) publicURL(key *string) string {
	if key == nil || *key == "" || h.storage == nil {
		return ""
	}
	return h.storage.FileURL(*key)
}
