// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"groundwork/internal/models"
	"groundwork/internal/ordering"
	"groundwork/internal/render"
	"groundwork/internal/slug"
	"groundwork/internal/store"
)

// categoryType reads the ?type= tab, defaulting to project categories.
func categoryType(r *http.Request) models.CategoryType {
	t := models.CategoryType(r.URL.Query().Get("type"))
	switch t {
	case models.CategoryTypeProject, models.CategoryTypeGallery, models.CategoryTypeJob:
		return t
	}
	return models.CategoryTypeProject
}

// CategoriesPage lists categories of one type with usage counts.
func (h *Admin) CategoriesPage(w http.ResponseWriter, r *http.Request) {
	h.categoriesPage(w, r, categoryType(r), nil)
}

func (h *Admin) categoriesPage(w http.ResponseWriter, r *http.Request, catType models.CategoryType, flashes []render.Flash) {
	cats, err := h.categories.ListByType(catType)
	if err != nil {
		h.serverError(w, "list categories", err)
		return
	}
	h.render.Page(w, r, "categories", &render.PageData{
		Title:   "Categories",
		Section: "categories",
		Flashes: flashes,
		Data: map[string]any{
			"Type":       string(catType),
			"Categories": cats,
		},
	})
}

// CategoryCreate adds a category at the end of its type's ordering.
func (h *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	catType := models.CategoryType(r.FormValue("type"))
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Redirect(w, r, "/admin/categories?type="+string(catType), http.StatusSeeOther)
		return
	}

	_, err := h.categories.Create(&models.Category{
		Name:     name,
		Slug:     slug.Generate(name),
		Type:     catType,
		IsActive: true,
		Color:    r.FormValue("color"),
	})
	if err != nil {
		h.serverError(w, "create category", err)
		return
	}

	h.invalidateForCategoryType(r, catType)
	http.Redirect(w, r, "/admin/categories?type="+string(catType), http.StatusSeeOther)
}

// CategoryMove swaps the category's display order with its neighbor.
func (h *Admin) CategoryMove(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	cat, err := h.categories.FindByID(id)
	if err != nil {
		h.serverError(w, "find category", err)
		return
	}
	if cat == nil {
		http.NotFound(w, r)
		return
	}

	dir := ordering.Direction(r.URL.Query().Get("dir"))
	if !ordering.ValidDirection(dir) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	moved, err := h.categories.Move(id, dir)
	if err != nil {
		h.serverError(w, "move category", err)
		return
	}
	if moved {
		h.invalidateForCategoryType(r, cat.Type)
	}
	h.categoriesPage(w, r, cat.Type, nil)
}

// CategoryDelete removes an unused category. Deleting a category that is
// still referenced is refused with an inline error.
func (h *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	cat, err := h.categories.FindByID(id)
	if err != nil {
		h.serverError(w, "find category", err)
		return
	}
	if cat == nil {
		http.NotFound(w, r)
		return
	}

	if err := h.categories.Delete(id); err != nil {
		if errors.Is(err, store.ErrCategoryInUse) {
			h.categoriesPage(w, r, cat.Type, []render.Flash{{
				Type:    "error",
				Message: "Cannot delete a category that is still in use.",
			}})
			return
		}
		h.serverError(w, "delete category", err)
		return
	}

	slog.Info("category deleted", "name", cat.Name, "type", cat.Type)
	h.invalidateForCategoryType(r, cat.Type)
	h.categoriesPage(w, r, cat.Type, nil)
}

// invalidateForCategoryType clears the cached public pages that render
// the given category type.
func (h *Admin) invalidateForCategoryType(r *http.Request, catType models.CategoryType) {
	if h.pages == nil {
		return
	}
	ctx := r.Context()
	switch catType {
	case models.CategoryTypeProject:
		h.pages.InvalidatePrefix(ctx, "/projects")
	case models.CategoryTypeGallery:
		h.pages.InvalidatePrefix(ctx, "/gallery")
	case models.CategoryTypeJob:
		h.pages.InvalidatePrefix(ctx, "/careers")
	}
}
