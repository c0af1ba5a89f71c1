// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Album is a gallery album. When ProjectID is set the album is "linked":
// its name follows the project title and its membership in the
// "Project Sites" category is locked (enforced by the album store).
type Album struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Slug          string     `json:"slug"`
	Description   string     `json:"description"`
	ProjectID     *uuid.UUID `json:"project_id"`
	ShowOnWebsite bool       `json:"show_on_website"`
	IsFeatured    bool       `json:"is_featured"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	// Virtual fields populated by store methods.
	CategoryIDs []uuid.UUID `json:"category_ids,omitempty"`
	ImageCount  int         `json:"image_count"`
	CoverS3Key  *string     `json:"cover_s3_key,omitempty"`
}

// IsLinked reports whether the album is tied to a project.
func (a *Album) IsLinked() bool {
	return a.ProjectID != nil
}

// HasCategory reports whether the album's loaded category set contains id.
func (a *Album) HasCategory(id uuid.UUID) bool {
	for _, c := range a.CategoryIDs {
		if c == id {
			return true
		}
	}
	return false
}

// GalleryImage is a single photo in an album. DisplayOrder defines the
// position within the album; at most one image per album is featured
// (the store unsets the previous one when a new image is featured).
type GalleryImage struct {
	ID           uuid.UUID `json:"id"`
	AlbumID      uuid.UUID `json:"album_id"`
	Title        string    `json:"title"`
	Caption      string    `json:"caption"`
	S3Key        string    `json:"s3_key"`
	ThumbS3Key   *string   `json:"thumb_s3_key,omitempty"`
	DisplayOrder int       `json:"display_order"`
	IsFeatured   bool      `json:"is_featured"`
	CreatedAt    time.Time `json:"created_at"`
}
