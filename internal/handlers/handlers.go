// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the public site and the
// admin back office. Admin handlers render HTMX-aware templates; public
// handlers render through the Valkey page cache.
package handlers

import (
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// maxUploadSize caps multipart form parsing for image and resume uploads.
const maxUploadSize = 20 << 20 // 20 MiB

// urlID parses the {id} route parameter as a UUID.
func urlID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// formUUIDPtr parses an optional UUID form value. An empty value means
// "none" and returns nil.
func formUUIDPtr(r *http.Request, field string) (*uuid.UUID, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// formChecked reports whether a checkbox form field was submitted.
func formChecked(r *http.Request, field string) bool {
	return r.FormValue(field) != ""
}

// fileExt returns the lowercased extension of an uploaded file name,
// without the dot. Falls back to "bin" for extension-less uploads.
func fileExt(header *multipart.FileHeader) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(header.Filename), "."))
	if ext == "" {
		return "bin"
	}
	return ext
}

// isImageUpload whitelists image extensions for logo, gallery, and fleet
// uploads.
func isImageUpload(ext string) bool {
	switch ext {
	case "jpg", "jpeg", "png", "gif", "webp":
		return true
	}
	return false
}

// contentTypeForExt maps an upload extension to the Content-Type stored
// alongside the S3 object.
func contentTypeForExt(ext string) string {
	switch ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "pdf":
		return "application/pdf"
	}
	return "application/octet-stream"
}
