// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CategoryType partitions categories by the domain they classify.
// Ordering and uniqueness rules apply within a single type partition.
type CategoryType string

const (
	CategoryTypeProject CategoryType = "project"
	CategoryTypeGallery CategoryType = "gallery"
	CategoryTypeJob     CategoryType = "job"
)

// ProjectSitesCategory is the distinguished gallery category that every
// project-linked album must belong to. Resolved by name at the store layer.
const ProjectSitesCategory = "Project Sites"

// Category classifies projects, gallery albums, or job postings depending
// on its Type. DisplayOrder defines the presentation sequence within a type;
// values need not be contiguous and are never renumbered.
type Category struct {
	ID           uuid.UUID    `json:"id"`
	Name         string       `json:"name"`
	Slug         string       `json:"slug"`
	Type         CategoryType `json:"type"`
	DisplayOrder int          `json:"display_order"`
	IsActive     bool         `json:"is_active"`
	Color        string       `json:"color"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	// Virtual field populated by store list methods.
	UsageCount int `json:"usage_count"`
}

// IsProjectSites reports whether this is the locked gallery category for
// project-linked albums.
func (c *Category) IsProjectSites() bool {
	return c.Type == CategoryTypeGallery && c.Name == ProjectSitesCategory
}
