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
	"groundwork/internal/ordering"
	"groundwork/internal/render"
	"groundwork/internal/storage"
)

// EquipmentPage lists the fleet with the add form.
func (h *Admin) EquipmentPage(w http.ResponseWriter, r *http.Request) {
	h.equipmentPage(w, r, nil)
}

// EquipmentEdit lists the fleet with the form pre-filled for one item.
func (h *Admin) EquipmentEdit(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	item, err := h.equipment.FindByID(id)
	if err != nil {
		h.serverError(w, "find equipment", err)
		return
	}
	if item == nil {
		http.NotFound(w, r)
		return
	}
	h.equipmentPage(w, r, item)
}

func (h *Admin) equipmentPage(w http.ResponseWriter, r *http.Request, editing *models.Equipment) {
	items, err := h.equipment.List()
	if err != nil {
		h.serverError(w, "list equipment", err)
		return
	}

	imageURLs := make(map[uuid.UUID]string, len(items))
	for _, e := range items {
		if url := h.publicURL(e.ImageS3Key); url != "" {
			imageURLs[e.ID] = url
		}
	}

	action := "/admin/equipment"
	if editing != nil {
		action = "/admin/equipment/" + editing.ID.String()
	}

	h.render.Page(w, r, "equipment", &render.PageData{
		Title:   "Fleet",
		Section: "equipment",
		Data: map[string]any{
			"Equipment": items,
			"ImageURLs": imageURLs,
			"Item":      editing,
			"Action":    action,
		},
	})
}

// EquipmentCreate adds a fleet item at the end of the ordering.
func (h *Admin) EquipmentCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	item, err := h.equipment.Create(&models.Equipment{
		Name:          name,
		Description:   r.FormValue("description"),
		ShowOnWebsite: formChecked(r, "show_on_website"),
	})
	if err != nil {
		h.serverError(w, "create equipment", err)
		return
	}

	if key, ok := h.uploadEquipmentImage(w, r, item.ID); ok && key != "" {
		item.ImageS3Key = &key
		if err := h.equipment.Update(item); err != nil {
			h.serverError(w, "save equipment image key", err)
			return
		}
	} else if !ok {
		return
	}

	h.invalidateFleet(r)
	http.Redirect(w, r, "/admin/equipment", http.StatusSeeOther)
}

// EquipmentUpdate saves edits and optionally replaces the photo.
func (h *Admin) EquipmentUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	item, err := h.equipment.FindByID(id)
	if err != nil {
		h.serverError(w, "find equipment", err)
		return
	}
	if item == nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	item.Name = strings.TrimSpace(r.FormValue("name"))
	item.Description = r.FormValue("description")
	item.ShowOnWebsite = formChecked(r, "show_on_website")

	oldKey := item.ImageS3Key
	if key, ok := h.uploadEquipmentImage(w, r, item.ID); ok && key != "" {
		item.ImageS3Key = &key
	} else if !ok {
		return
	}

	if err := h.equipment.Update(item); err != nil {
		h.serverError(w, "update equipment", err)
		return
	}

	if oldKey != nil && item.ImageS3Key != nil && *oldKey != *item.ImageS3Key && h.storage != nil {
		if err := h.storage.Delete(r.Context(), h.storage.PublicBucket(), *oldKey); err != nil {
			slog.Warn("delete old equipment photo failed", "key", *oldKey, "error", err)
		}
	}

	h.invalidateFleet(r)
	http.Redirect(w, r, "/admin/equipment", http.StatusSeeOther)
}

func (h *Admin) uploadEquipmentImage(w http.ResponseWriter, r *http.Request, id uuid.UUID) (string, bool) {
	file, header, err := r.FormFile("image")
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

	key := storage.EquipmentKey(id.String(), ext)
	if err := h.storage.Upload(r.Context(), h.storage.PublicBucket(), key, contentTypeForExt(ext), file, header.Size); err != nil {
		h.serverError(w, "upload equipment photo", err)
		return "", false
	}
	return key, true
}

// EquipmentMove swaps the item's display order with its neighbor.
func (h *Admin) EquipmentMove(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	dir := ordering.Direction(r.URL.Query().Get("dir"))
	if !ordering.ValidDirection(dir) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if _, err := h.equipment.Move(id, dir); err != nil {
		h.serverError(w, "move equipment", err)
		return
	}
	h.invalidateFleet(r)
	h.equipmentPage(w, r, nil)
}

// EquipmentDelete removes a fleet item and its photo.
func (h *Admin) EquipmentDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	deleted, err := h.equipment.Delete(id)
	if err != nil {
		h.serverError(w, "delete equipment", err)
		return
	}
	if deleted != nil && deleted.ImageS3Key != nil && h.storage != nil {
		if err := h.storage.Delete(r.Context(), h.storage.PublicBucket(), *deleted.ImageS3Key); err != nil {
			slog.Warn("delete equipment photo failed", "key", *deleted.ImageS3Key, "error", err)
		}
	}
	h.invalidateFleet(r)
	h.equipmentPage(w, r, nil)
}

func (h *Admin) invalidateFleet(r *http.Request) {
	if h.pages == nil {
		return
	}
	h.pages.InvalidatePrefix(r.Context(), "/fleet")
}
