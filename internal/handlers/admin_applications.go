// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"groundwork/internal/models"
	"groundwork/internal/render"
)

// resumeURLTTL is how long presigned resume download links stay valid.
const resumeURLTTL = 15 * time.Minute

// ApplicationsList shows job applications, optionally filtered to one
// posting via ?job=.
func (h *Admin) ApplicationsList(w http.ResponseWriter, r *http.Request) {
	var (
		apps []models.JobApplication
		err  error
	)
	if raw := r.URL.Query().Get("job"); raw != "" {
		jobID, parseErr := uuid.Parse(raw)
		if parseErr != nil {
			http.NotFound(w, r)
			return
		}
		apps, err = h.apps.ListByJob(jobID)
	} else {
		apps, err = h.apps.List()
	}
	if err != nil {
		h.serverError(w, "list applications", err)
		return
	}

	// Resumes live in the private bucket; admins get short-lived links.
	resumeURLs := make(map[uuid.UUID]string)
	if h.storage != nil {
		for _, a := range apps {
			if a.ResumeS3Key == nil || *a.ResumeS3Key == "" {
				continue
			}
			url, err := h.storage.PresignedURL(r.Context(), h.storage.PrivateBucket(), *a.ResumeS3Key, resumeURLTTL)
			if err != nil {
				slog.Warn("presign resume failed", "key", *a.ResumeS3Key, "error", err)
				continue
			}
			resumeURLs[a.ID] = url
		}
	}

	h.render.Page(w, r, "applications", &render.PageData{
		Title:   "Applications",
		Section: "applications",
		Data: map[string]any{
			"Applications": apps,
			"ResumeURLs":   resumeURLs,
		},
	})
}

// ApplicationStatus moves an application through the triage pipeline.
func (h *Admin) ApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	status := models.ApplicationStatus(r.FormValue("status"))
	if !models.ValidApplicationStatus(status) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := h.apps.SetStatus(id, status); err != nil {
		h.serverError(w, "set application status", err)
		return
	}
	h.ApplicationsList(w, r)
}

// ApplicationDelete removes an application and its resume object.
func (h *Admin) ApplicationDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	deleted, err := h.apps.Delete(id)
	if err != nil {
		h.serverError(w, "delete application", err)
		return
	}
	if deleted != nil && deleted.ResumeS3Key != nil && h.storage != nil {
		if err := h.storage.Delete(r.Context(), h.storage.PrivateBucket(), *deleted.ResumeS3Key); err != nil {
			slog.Warn("delete resume failed", "key", *deleted.ResumeS3Key, "error", err)
		}
	}
	h.ApplicationsList(w, r)
}
