// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"mime/multipart"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"groundwork/internal/models"
)

func TestFileExt(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"photo.JPG", "jpg"},
		{"logo.png", "png"},
		{"site plan.PDF", "pdf"},
		{"archive.tar.gz", "gz"},
		{"no-extension", "bin"},
		{"trailing-dot.", "bin"},
	}
	for _, tt := range tests {
		got := fileExt(&multipart.FileHeader{Filename: tt.filename})
		if got != tt.want {
			t.Errorf("fileExt(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestIsImageUpload(t *testing.T) {
	for _, ext := range []string{"jpg", "jpeg", "png", "gif", "webp"} {
		if !isImageUpload(ext) {
			t.Errorf("isImageUpload(%q) = false, want true", ext)
		}
	}
	for _, ext := range []string{"pdf", "svg", "exe", "html", ""} {
		if isImageUpload(ext) {
			t.Errorf("isImageUpload(%q) = true, want false", ext)
		}
	}
}

func TestContentTypeForExt(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{"jpg", "image/jpeg"},
		{"jpeg", "image/jpeg"},
		{"png", "image/png"},
		{"gif", "image/gif"},
		{"webp", "image/webp"},
		{"pdf", "application/pdf"},
		{"bin", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := contentTypeForExt(tt.ext); got != tt.want {
			t.Errorf("contentTypeForExt(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestValidEmail(t *testing.T) {
	valid := []string{"ana@example.com", "crew.lead@site.groundwork.ro", "x@y.co"}
	for _, s := range valid {
		if !validEmail(s) {
			t.Errorf("validEmail(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "plainaddress", "missing@domain", "two@@example.com", "spaced name@example.com", "a@" + strings.Repeat("b", 300) + ".com"}
	for _, s := range invalid {
		if validEmail(s) {
			t.Errorf("validEmail(%q) = true, want false", s)
		}
	}
}

func TestFieldOK(t *testing.T) {
	if fieldOK("", maxFieldLen) {
		t.Error("empty field should fail")
	}
	if !fieldOK("Bridge repair inquiry", maxFieldLen) {
		t.Error("normal field should pass")
	}
	if fieldOK(strings.Repeat("x", maxFieldLen+1), maxFieldLen) {
		t.Error("over-limit field should fail")
	}
}

func TestFormUUIDPtr(t *testing.T) {
	id := uuid.New()

	t.Run("empty means none", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader("client_id="))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		got, err := formUUIDPtr(req, "client_id")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("got %v, want nil", got)
		}
	})

	t.Run("valid UUID", func(t *testing.T) {
		form := url.Values{"client_id": {id.String()}}
		req := httptest.NewRequest("POST", "/", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		got, err := formUUIDPtr(req, "client_id")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || *got != id {
			t.Errorf("got %v, want %s", got, id)
		}
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/", strings.NewReader("client_id=nope"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		if _, err := formUUIDPtr(req, "client_id"); err == nil {
			t.Error("expected parse error for invalid UUID")
		}
	})
}

func TestFormChecked(t *testing.T) {
	req := httptest.NewRequest("POST", "/", strings.NewReader("show_on_website=on"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if !formChecked(req, "show_on_website") {
		t.Error("checked box should read true")
	}
	if formChecked(req, "is_featured") {
		t.Error("absent box should read false")
	}
}

func TestCategoryTypeDefaultsToProject(t *testing.T) {
	tests := []struct {
		query string
		want  models.CategoryType
	}{
		{"type=project", models.CategoryTypeProject},
		{"type=gallery", models.CategoryTypeGallery},
		{"type=job", models.CategoryTypeJob},
		{"type=bogus", models.CategoryTypeProject},
		{"", models.CategoryTypeProject},
	}
	for _, tt := range tests {
		req := httptest.NewRequest("GET", "/admin/categories?"+tt.query, nil)
		if got := categoryType(req); got != tt.want {
			t.Errorf("categoryType(?%s) = %q, want %q", tt.query, got, tt.want)
		}
	}
}

func TestParseDateRoundTrip(t *testing.T) {
	if got := parseDate(""); got != nil {
		t.Errorf("parseDate(\"\") = %v, want nil", got)
	}
	if got := parseDate("not a date"); got != nil {
		t.Errorf("parseDate garbage = %v, want nil", got)
	}

	d := parseDate("2026-03-15")
	if d == nil {
		t.Fatal("parseDate valid date returned nil")
	}
	if d.Year() != 2026 || d.Month() != time.March || d.Day() != 15 {
		t.Errorf("parseDate = %v, want 2026-03-15", d)
	}

	if got := dateValue(d); got != "2026-03-15" {
		t.Errorf("dateValue = %q, want 2026-03-15", got)
	}
	if got := dateValue(nil); got != "" {
		t.Errorf("dateValue(nil) = %q, want empty", got)
	}
}
