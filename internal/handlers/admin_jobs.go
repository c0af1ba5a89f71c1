// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"groundwork/internal/models"
	"groundwork/internal/render"
	"groundwork/internal/slug"
)

// JobsList shows all job postings with application counts.
func (h *Admin) JobsList(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobs.List()
	if err != nil {
		h.serverError(w, "list jobs", err)
		return
	}
	h.render.Page(w, r, "jobs_list", &render.PageData{
		Title:   "Job postings",
		Section: "jobs",
		Data:    map[string]any{"Jobs": jobs},
	})
}

// JobNew renders an empty posting form.
func (h *Admin) JobNew(w http.ResponseWriter, r *http.Request) {
	h.jobForm(w, r, nil)
}

// JobEdit renders the form pre-filled with an existing posting.
func (h *Admin) JobEdit(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	job, err := h.jobs.FindByID(id)
	if err != nil {
		h.serverError(w, "find job", err)
		return
	}
	if job == nil {
		http.NotFound(w, r)
		return
	}
	h.jobForm(w, r, job)
}

func (h *Admin) jobForm(w http.ResponseWriter, r *http.Request, j *models.JobPosting) {
	departments, err := h.categories.ListActiveByType(models.CategoryTypeJob)
	if err != nil {
		h.serverError(w, "list departments", err)
		return
	}

	action := "/admin/jobs"
	title := "New posting"
	if j != nil {
		action = "/admin/jobs/" + j.ID.String()
		title = "Edit posting"
	}

	h.render.Page(w, r, "job_form", &render.PageData{
		Title:   title,
		Section: "jobs",
		Data: map[string]any{
			"Job":         j,
			"Departments": departments,
			"Action":      action,
		},
	})
}

// JobCreate inserts a new posting.
func (h *Admin) JobCreate(w http.ResponseWriter, r *http.Request) {
	j, ok := h.jobFromForm(w, r, nil)
	if !ok {
		return
	}
	created, err := h.jobs.Create(j)
	if err != nil {
		h.serverError(w, "create job", err)
		return
	}
	slog.Info("job posting created", "slug", created.Slug)
	h.invalidateCareers(r)
	http.Redirect(w, r, "/admin/jobs", http.StatusSeeOther)
}

// JobUpdate saves edits to a posting.
func (h *Admin) JobUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	existing, err := h.jobs.FindByID(id)
	if err != nil {
		h.serverError(w, "find job", err)
		return
	}
	if existing == nil {
		http.NotFound(w, r)
		return
	}

	j, ok := h.jobFromForm(w, r, existing)
	if !ok {
		return
	}
	if err := h.jobs.Update(j); err != nil {
		h.serverError(w, "update job", err)
		return
	}
	h.invalidateCareers(r)
	http.Redirect(w, r, "/admin/jobs", http.StatusSeeOther)
}

func (h *Admin) jobFromForm(w http.ResponseWriter, r *http.Request, existing *models.JobPosting) (*models.JobPosting, bool) {
	title := strings.TrimSpace(r.FormValue("title"))
	if title == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return nil, false
	}
	departmentID, err := formUUIDPtr(r, "department_id")
	if err != nil {
		http.Error(w, "invalid department", http.StatusBadRequest)
		return nil, false
	}

	j := &models.JobPosting{
		Title:          title,
		Slug:           slug.Generate(title),
		DepartmentID:   departmentID,
		Location:       strings.TrimSpace(r.FormValue("location")),
		EmploymentType: r.FormValue("employment_type"),
		Description:    r.FormValue("description"),
		IsOpen:         formChecked(r, "is_open"),
	}
	if existing != nil {
		j.ID = existing.ID
		j.Slug = existing.Slug
	}
	return j, true
}

// JobDelete removes a posting and its applications, cleaning up resumes
// from the private bucket first.
func (h *Admin) JobDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	resumeKeys, err := h.apps.ResumeKeysByJob(id)
	if err != nil {
		h.serverError(w, "collect resume keys", err)
		return
	}
	if err := h.jobs.Delete(id); err != nil {
		h.serverError(w, "delete job", err)
		return
	}

	if h.storage != nil {
		for _, key := range resumeKeys {
			if err := h.storage.Delete(r.Context(), h.storage.PrivateBucket(), key); err != nil {
				slog.Warn("delete resume failed", "key", key, "error", err)
			}
		}
	}

	h.invalidateCareers(r)
	h.JobsList(w, r)
}

func (h *Admin) invalidateCareers(r *http.Request) {
	if h.pages == nil {
		return
	}
	h.pages.InvalidatePrefix(r.Context(), "/careers")
}
