// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"groundwork/internal/models"
	"groundwork/internal/render"
	"groundwork/internal/slug"
	"groundwork/internal/store"
)

// ProjectsList shows all projects with the featured budget.
func (h *Admin) ProjectsList(w http.ResponseWriter, r *http.Request) {
	h.projectsList(w, r, nil)
}

func (h *Admin) projectsList(w http.ResponseWriter, r *http.Request, flashes []render.Flash) {
	projects, err := h.projects.List()
	if err != nil {
		h.serverError(w, "list projects", err)
		return
	}
	featured, err := h.projects.CountFeatured()
	if err != nil {
		h.serverError(w, "count featured", err)
		return
	}
	h.render.Page(w, r, "projects_list", &render.PageData{
		Title:   "Projects",
		Section: "projects",
		Flashes: flashes,
		Data: map[string]any{
			"Projects":      projects,
			"FeaturedCount": featured,
			"FeaturedMax":   models.MaxFeaturedProjects,
		},
	})
}

// ProjectNew renders an empty project form.
func (h *Admin) ProjectNew(w http.ResponseWriter, r *http.Request) {
	h.projectForm(w, r, nil, nil)
}

// ProjectEdit renders the form pre-filled with an existing project and its
// linked albums.
func (h *Admin) ProjectEdit(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	project, err := h.projects.FindByID(id)
	if err != nil {
		h.serverError(w, "find project", err)
		return
	}
	if project == nil {
		http.NotFound(w, r)
		return
	}
	albums, err := h.albums.ListByProject(id)
	if err != nil {
		h.serverError(w, "list linked albums", err)
		return
	}
	h.projectForm(w, r, project, albums)
}

func (h *Admin) projectForm(w http.ResponseWriter, r *http.Request, p *models.Project, albums []models.Album) {
	categories, err := h.categories.ListActiveByType(models.CategoryTypeProject)
	if err != nil {
		h.serverError(w, "list project categories", err)
		return
	}
	clients, err := h.clients.List()
	if err != nil {
		h.serverError(w, "list clients", err)
		return
	}

	action := "/admin/projects"
	started, completed := "", ""
	if p != nil {
		action = "/admin/projects/" + p.ID.String()
		started = dateValue(p.StartedAt)
		completed = dateValue(p.CompletedAt)
	}

	title := "New project"
	if p != nil {
		title = "Edit project"
	}
	h.render.Page(w, r, "project_form", &render.PageData{
		Title:   title,
		Section: "projects",
		Data: map[string]any{
			"Project":     p,
			"Albums":      albums,
			"Categories":  categories,
			"Clients":     clients,
			"Action":      action,
			"StartedAt":   started,
			"CompletedAt": completed,
		},
	})
}

// ProjectCreate inserts a new project. New projects are never featured;
// featuring is a separate action against the cap.
func (h *Admin) ProjectCreate(w http.ResponseWriter, r *http.Request) {
	p, ok := h.projectFromForm(w, r, nil)
	if !ok {
		return
	}
	created, err := h.projects.Create(p)
	if err != nil {
		h.serverError(w, "create project", err)
		return
	}
	slog.Info("project created", "slug", created.Slug)
	h.invalidateProjects(r)
	http.Redirect(w, r, "/admin/projects", http.StatusSeeOther)
}

// ProjectUpdate saves edits to an existing project.
func (h *Admin) ProjectUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	existing, err := h.projects.FindByID(id)
	if err != nil {
		h.serverError(w, "find project", err)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	p, ok := h.projectFromForm(w, r, existing)
	if !ok {
		return
	}
	if err := h.projects.Update(p); err != nil {
		h.serverError(w, "update project", err)
		return
	}
	h.invalidateProjects(r)
	http.Redirect(w, r, "/admin/projects", http.StatusSeeOther)
}

// projectFromForm builds a project from the submitted form. For updates,
// existing carries the identity fields the form does not resubmit.
func (h *Admin) projectFromForm(w http.ResponseWriter, r *http.Request, existing *models.Project) (*models.Project, bool) {
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return nil, false
	}

	categoryID, err := formUUIDPtr(r, "category_id")
	if err != nil {
		http.Error(w, "invalid category", http.StatusBadRequest)
		return nil, false
	}
	clientID, err := formUUIDPtr(r, "client_id")
	if err != nil {
		http.Error(w, "invalid client", http.StatusBadRequest)
		return nil, false
	}

	status := models.ProjectStatus(r.FormValue("status"))
	if !models.ValidProjectStatus(status) {
		status = models.ProjectStatusPlanned
	}

	p := &models.Project{
		Title:         title,
		Slug:          slug.Generate(title),
		Description:   r.FormValue("description"),
		CategoryID:    categoryID,
		Client:        models.ClientRef{ID: clientID},
		Location:      strings.TrimSpace(r.FormValue("location")),
		Status:        status,
		ShowOnWebsite: formChecked(r, "show_on_website"),
		StartedAt:     parseDate(r.FormValue("started_at")),
		CompletedAt:   parseDate(r.FormValue("completed_at")),
	}
	if existing != nil {
		p.ID = existing.ID
		p.Slug = existing.Slug
	}
	return p, true
}

// ProjectDelete removes a project. Linked albums survive with their link
// cleared, so site photos are never lost with the project record.
func (h *Admin) ProjectDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.projects.Delete(id); err != nil {
		h.serverError(w, "delete project", err)
		return
	}
	h.invalidateProjects(r)
	h.projectsList(w, r, nil)
}

// ProjectFeature toggles the homepage feature flag. Exceeding the cap is
// reported as an inline error instead of silently dropping another project.
func (h *Admin) ProjectFeature(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	on := r.URL.Query().Get("on") == "true"

	if err := h.projects.SetFeatured(id, on); err != nil {
		if errors.Is(err, store.ErrFeaturedLimit) {
			h.projectsList(w, r, []render.Flash{{
				Type:    "error",
				Message: "Featured limit reached. Unfeature another project first.",
			}})
			return
		}
		h.serverError(w, "set featured", err)
		return
	}

	h.invalidateProjects(r)
	h.projectsList(w, r, nil)
}

func (h *Admin) invalidateProjects(r *http.Request) {
	if h.pages == nil {
		return
	}
	h.pages.InvalidatePrefix(r.Context(), "/projects")
	h.pages.InvalidateHomepage(r.Context())
}

// parseDate parses an HTML date input value; empty means unset.
func parseDate(v string) *time.Time {
	if v == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil
	}
	return &t
}

// dateValue formats an optional date back into an HTML date input value.
func dateValue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
