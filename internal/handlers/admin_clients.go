// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"groundwork/internal/models"
	"groundwork/internal/render"
	"groundwork/internal/storage"
)

// ClientsPage lists clients with the add form.
func (h *Admin) ClientsPage(w http.ResponseWriter, r *http.Request) {
	h.clientsPage(w, r, nil)
}

// ClientEdit lists clients with the form pre-filled for one of them.
func (h *Admin) ClientEdit(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	client, err := h.clients.FindByID(id)
	if err != nil {
		h.serverError(w, "find client", err)
		return
	}
	if client == nil {
		http.NotFound(w, r)
		return
	}
	h.clientsPage(w, r, client)
}

func (h *Admin) clientsPage(w http.ResponseWriter, r *http.Request, editing *models.Client) {
	clients, err := h.clients.List()
	if err != nil {
		h.serverError(w, "list clients", err)
		return
	}

	logoURLs := make(map[uuid.UUID]string, len(clients))
	for _, c := range clients {
		if url := h.publicURL(c.LogoS3Key); url != "" {
			logoURLs[c.ID] = url
		}
	}

	action := "/admin/clients"
	if editing != nil {
		action = "/admin/clients/" + editing.ID.String()
	}

	h.render.Page(w, r, "clients", &render.PageData{
		Title:   "Clients",
		Section: "clients",
		Data: map[string]any{
			"Clients":  clients,
			"LogoURLs": logoURLs,
			"Client":   editing,
			"Action":   action,
		},
	})
}

// ClientCreate adds a client, uploading the logo to the public bucket
// when one was attached.
func (h *Admin) ClientCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	client, err := h.clients.Create(&models.Client{
		Name:          name,
		Website:       strings.TrimSpace(r.FormValue("website")),
		ShowOnWebsite: formChecked(r, "show_on_website"),
	})
	if err != nil {
		h.serverError(w, "create client", err)
		return
	}

	if key, ok := h.uploadClientLogo(w, r, client.ID); ok && key != "" {
		client.LogoS3Key = &key
		if err := h.clients.Update(client); err != nil {
			h.serverError(w, "save client logo key", err)
			return
		}
	} else if !ok {
		return
	}

	h.invalidateClients(r)
	http.Redirect(w, r, "/admin/clients", http.StatusSeeOther)
}

// ClientUpdate saves edits to a client and optionally replaces the logo.
func (h *Admin) ClientUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	client, err := h.clients.FindByID(id)
	if err != nil {
		h.serverError(w, "find client", err)
		return
	}
	if client == nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	client.Name = strings.TrimSpace(r.FormValue("name"))
	client.Website = strings.TrimSpace(r.FormValue("website"))
	client.ShowOnWebsite = formChecked(r, "show_on_website")

	oldKey := client.LogoS3Key
	if key, ok := h.uploadClientLogo(w, r, client.ID); ok && key != "" {
		client.LogoS3Key = &key
	} else if !ok {
		return
	}

	if err := h.clients.Update(client); err != nil {
		h.serverError(w, "update client", err)
		return
	}

	// Remove the replaced logo object once the row points at the new one.
	if oldKey != nil && client.LogoS3Key != nil && *oldKey != *client.LogoS3Key && h.storage != nil {
		if err := h.storage.Delete(r.Context(), h.storage.PublicBucket(), *oldKey); err != nil {
			slog.Warn("delete old logo failed", "key", *oldKey, "error", err)
		}
	}

	h.invalidateClients(r)
	http.Redirect(w, r, "/admin/clients", http.StatusSeeOther)
}

// uploadClientLogo stores an attached logo and returns its key. Returns
// ok=false after writing an error response.
func (h *Admin) uploadClientLogo(w http.ResponseWriter, r *http.Request, clientID uuid.UUID) (string, bool) {
	file, header, err := r.FormFile("logo")
	if err == http.ErrMissingFile {
		return "", true
	}
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return "", false
	}
	defer file.Close()

	ext := fileExt(header)
	if !isImageUpload(ext) {
		http.Error(w, "unsupported image type", http.StatusBadRequest)
		return "", false
	}
	if h.storage == nil {
		http.Error(w, "object storage is not configured", http.StatusServiceUnavailable)
		return "", false
	}

	key := storage.LogoKey(clientID.String(), ext)
	if err := h.storage.Upload(r.Context(), h.storage.PublicBucket(), key, contentTypeForExt(ext), file, header.Size); err != nil {
		h.serverError(w, "upload logo", err)
		return "", false
	}
	return key, true
}

// ClientDelete removes a client and its logo object. Projects referencing
// the client keep their rows with the link cleared.
func (h *Admin) ClientDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	deleted, err := h.clients.Delete(id)
	if err != nil {
		h.serverError(w, "delete client", err)
		return
	}
	if deleted != nil && deleted.LogoS3Key != nil && h.storage != nil {
		if err := h.storage.Delete(r.Context(), h.storage.PublicBucket(), *deleted.LogoS3Key); err != nil {
			slog.Warn("delete logo failed", "key", *deleted.LogoS3Key, "error", err)
		}
	}
	h.invalidateClients(r)
	h.clientsPage(w, r, nil)
}

func (h *Admin) invalidateClients(r *http.Request) {
	if h.pages == nil {
		return
	}
	h.pages.InvalidateHomepage(r.Context())
	h.pages.InvalidatePrefix(r.Context(), "/projects")
}
