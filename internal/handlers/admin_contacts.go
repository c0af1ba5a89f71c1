// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"groundwork/internal/models"
	"groundwork/internal/render"
)

// ContactsList shows contact-form submissions for triage.
func (h *Admin) ContactsList(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contacts.List()
	if err != nil {
		h.serverError(w, "list contacts", err)
		return
	}
	h.render.Page(w, r, "contacts", &render.PageData{
		Title:   "Messages",
		Section: "contacts",
		Data:    map[string]any{"Contacts": contacts},
	})
}

// ContactStatus moves a submission to read or archived via ?to=.
func (h *Admin) ContactStatus(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	status := models.ContactStatus(r.URL.Query().Get("to"))
	switch status {
	case models.ContactStatusNew, models.ContactStatusRead, models.ContactStatusArchived:
	default:
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if err := h.contacts.SetStatus(id, status); err != nil {
		h.serverError(w, "set contact status", err)
		return
	}
	h.ContactsList(w, r)
}

// ContactDelete removes a submission.
func (h *Admin) ContactDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if err := h.contacts.Delete(id); err != nil {
		h.serverError(w, "delete contact", err)
		return
	}
	h.ContactsList(w, r)
}
