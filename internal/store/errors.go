// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package store provides database access methods for all Groundwork
// entities. Each store struct wraps a *sql.DB and exposes typed query
// methods. Business rules that the public site depends on (the featured
// cap, the Project Sites lock, the category delete guard) are enforced
// here, transactionally, so no write path can bypass them.
package store

import "errors"

var (
	// ErrCategoryInUse is returned when deleting a category that projects,
	// albums, or job postings still reference.
	ErrCategoryInUse = errors.New("category is still referenced")

	// ErrFeaturedLimit is returned when featuring a project would exceed
	// the homepage cap.
	ErrFeaturedLimit = errors.New("featured project limit reached")

	// ErrProjectSitesLocked is returned when an edit would remove a
	// project-linked album from the Project Sites category.
	ErrProjectSitesLocked = errors.New("project-linked albums cannot leave the Project Sites category")

	// ErrProjectSitesMissing is returned when the distinguished gallery
	// category cannot be resolved (the seed should always create it).
	ErrProjectSitesMissing = errors.New("Project Sites category not found")
)
