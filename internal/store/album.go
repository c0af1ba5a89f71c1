// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"groundwork/internal/models"
)

// AlbumStore manages gallery albums and their category memberships.
// Both locks for project-linked albums are enforced here, inside the same
// transaction as the write: Create forces "Project Sites" membership and
// Update rejects removal, and the album name always follows the linked
// project's title. No admin path can produce a linked album outside the
// distinguished category or with a name of its own.
type AlbumStore struct {
	db *sql.DB
}

// NewAlbumStore returns a new AlbumStore.
func NewAlbumStore(db *sql.DB) *AlbumStore {
	return &AlbumStore{db: db}
}

const albumColumns = `a.id, a.name, a.slug, a.description, a.project_id,
	a.show_on_website, a.is_featured, a.created_at, a.updated_at`

// List returns all albums for the admin console, newest first, with image
// counts and the cover image key (the featured image, or the first by
// display order).
func (s *AlbumStore) List() ([]models.Album, error) {
	return s.list(`ORDER BY a.created_at DESC`, nil)
}

// ListVisible returns albums for the public gallery. Hidden albums are
// excluded before anything else; featured albums sort first.
func (s *AlbumStore) ListVisible() ([]models.Album, error) {
	return s.list(`WHERE a.show_on_website = TRUE ORDER BY a.is_featured DESC, a.created_at DESC`, nil)
}

// ListVisibleByCategory returns visible albums belonging to one gallery
// category, featured first.
func (s *AlbumStore) ListVisibleByCategory(categoryID uuid.UUID) ([]models.Album, error) {
	return s.list(`
		JOIN album_categories ac ON ac.album_id = a.id AND ac.category_id = $1
		WHERE a.show_on_website = TRUE
		ORDER BY a.is_featured DESC, a.created_at DESC`, []any{categoryID})
}

// ListByProject returns the albums linked to a project, newest first.
func (s *AlbumStore) ListByProject(projectID uuid.UUID) ([]models.Album, error) {
	return s.list(`WHERE a.project_id = $1 ORDER BY a.created_at DESC`, []any{projectID})
}

func (s *AlbumStore) list(tail string, args []any) ([]models.Album, error) {
	rows, err := s.db.Query(`
		SELECT `+albumColumns+`,
		       (SELECT COUNT(*) FROM gallery_images gi WHERE gi.album_id = a.id),
		       (SELECT COALESCE(
		           (SELECT gi.s3_key FROM gallery_images gi
		            WHERE gi.album_id = a.id AND gi.is_featured = TRUE LIMIT 1),
		           (SELECT gi.s3_key FROM gallery_images gi
		            WHERE gi.album_id = a.id
		            ORDER BY gi.display_order, gi.created_at LIMIT 1)))
		FROM albums a
		`+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	var items []models.Album
	for rows.Next() {
		var a models.Album
		if err := rows.Scan(
			&a.ID, &a.Name, &a.Slug, &a.Description, &a.ProjectID,
			&a.ShowOnWebsite, &a.IsFeatured, &a.CreatedAt, &a.UpdatedAt,
			&a.ImageCount, &a.CoverS3Key,
		); err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

// FindByID retrieves an album by ID with its category set loaded.
// Returns nil if not found.
func (s *AlbumStore) FindByID(id uuid.UUID) (*models.Album, error) {
	a := &models.Album{}
	err := s.db.QueryRow(`
		SELECT `+albumColumns+` FROM albums a WHERE a.id = $1
	`, id).Scan(
		&a.ID, &a.Name, &a.Slug, &a.Description, &a.ProjectID,
		&a.ShowOnWebsite, &a.IsFeatured, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find album by id: %w", err)
	}

	if a.CategoryIDs, err = s.categoryIDs(a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

// FindVisibleBySlug retrieves a visible album by slug for the public album
// page, with categories loaded. Returns nil if not found or hidden.
func (s *AlbumStore) FindVisibleBySlug(slug string) (*models.Album, error) {
	a := &models.Album{}
	err := s.db.QueryRow(`
		SELECT `+albumColumns+` FROM albums a
		WHERE a.slug = $1 AND a.show_on_website = TRUE
	`, slug).Scan(
		&a.ID, &a.Name, &a.Slug, &a.Description, &a.ProjectID,
		&a.ShowOnWebsite, &a.IsFeatured, &a.CreatedAt, &a.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find album by slug: %w", err)
	}

	if a.CategoryIDs, err = s.categoryIDs(a.ID); err != nil {
		return nil, err
	}
	return a, nil
}

// categoryIDs loads the category set for an album.
func (s *AlbumStore) categoryIDs(albumID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := s.db.Query(
		`SELECT category_id FROM album_categories WHERE album_id = $1`, albumID,
	)
	if err != nil {
		return nil, fmt.Errorf("album categories: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan album category: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// projectSitesID resolves the distinguished gallery category inside tx.
func projectSitesID(tx *sql.Tx) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(
		`SELECT id FROM categories WHERE type = 'gallery' AND name = $1`,
		models.ProjectSitesCategory,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return uuid.Nil, ErrProjectSitesMissing
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve project sites category: %w", err)
	}
	return id, nil
}

// linkedProjectTitle resolves the linked project's title inside tx. A
// linked album carries the project title as its name.
func linkedProjectTitle(tx *sql.Tx, projectID uuid.UUID) (string, error) {
	var title string
	err := tx.QueryRow(`SELECT title FROM projects WHERE id = $1`, projectID).Scan(&title)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("linked project %s does not exist", projectID)
	}
	if err != nil {
		return "", fmt.Errorf("resolve linked project: %w", err)
	}
	return title, nil
}

// Create inserts a new album with the given category memberships. When the
// album is linked to a project, the "Project Sites" category is forced into
// the set regardless of what the caller selected, and the album name is
// taken from the project title.
func (s *AlbumStore) Create(a *models.Album, categoryIDs []uuid.UUID) (*models.Album, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("create album: begin tx: %w", err)
	}
	defer tx.Rollback()

	if a.ProjectID != nil {
		psID, err := projectSitesID(tx)
		if err != nil {
			return nil, fmt.Errorf("create album: %w", err)
		}
		categoryIDs = ensureID(categoryIDs, psID)

		title, err := linkedProjectTitle(tx, *a.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("create album: %w", err)
		}
		a.Name = title
	}

	result := &models.Album{}
	err = tx.QueryRow(`
		INSERT INTO albums (name, slug, description, project_id, show_on_website, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, slug, description, project_id,
		          show_on_website, is_featured, created_at, updated_at
	`, a.Name, a.Slug, a.Description, a.ProjectID, a.ShowOnWebsite, a.IsFeatured).Scan(
		&result.ID, &result.Name, &result.Slug, &result.Description, &result.ProjectID,
		&result.ShowOnWebsite, &result.IsFeatured, &result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create album: %w", err)
	}

	if err := replaceCategories(tx, result.ID, categoryIDs); err != nil {
		return nil, fmt.Errorf("create album: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("create album: commit: %w", err)
	}
	result.CategoryIDs = categoryIDs
	return result, nil
}

// Update modifies an album and replaces its category memberships. For an
// album that stays project-linked, a category set that drops "Project
// Sites" is rejected with ErrProjectSitesLocked and nothing is written;
// other memberships may be added or removed freely. Linking a previously
// free album forces the membership in, the same as Create, and in both
// cases the album name is taken from the project title.
func (s *AlbumStore) Update(a *models.Album, categoryIDs []uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("update album: begin tx: %w", err)
	}
	defer tx.Rollback()

	if a.ProjectID != nil {
		psID, err := projectSitesID(tx)
		if err != nil {
			return fmt.Errorf("update album: %w", err)
		}

		var prevProjectID *uuid.UUID
		err = tx.QueryRow(`SELECT project_id FROM albums WHERE id = $1`, a.ID).Scan(&prevProjectID)
		if err != nil && err != sql.ErrNoRows {
			return fmt.Errorf("update album: %w", err)
		}
		if prevProjectID == nil {
			categoryIDs = ensureID(categoryIDs, psID)
		} else if !containsID(categoryIDs, psID) {
			return ErrProjectSitesLocked
		}

		title, err := linkedProjectTitle(tx, *a.ProjectID)
		if err != nil {
			return fmt.Errorf("update album: %w", err)
		}
		a.Name = title
	}

	_, err = tx.Exec(`
		UPDATE albums SET
			name = $1, slug = $2, description = $3, project_id = $4,
			show_on_website = $5, is_featured = $6, updated_at = NOW()
		WHERE id = $7
	`, a.Name, a.Slug, a.Description, a.ProjectID,
		a.ShowOnWebsite, a.IsFeatured, a.ID)
	if err != nil {
		return fmt.Errorf("update album: %w", err)
	}

	if err := replaceCategories(tx, a.ID, categoryIDs); err != nil {
		return fmt.Errorf("update album: %w", err)
	}
	return tx.Commit()
}

// Delete removes an album by ID. Images and category memberships cascade.
// Returns the deleted album's image keys so the caller can clean up S3.
func (s *AlbumStore) Delete(id uuid.UUID) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT s3_key, thumb_s3_key FROM gallery_images WHERE album_id = $1
	`, id)
	if err != nil {
		return nil, fmt.Errorf("delete album: list images: %w", err)
	}
	var keys []string
	for rows.Next() {
		var key string
		var thumb *string
		if err := rows.Scan(&key, &thumb); err != nil {
			rows.Close()
			return nil, fmt.Errorf("delete album: scan image: %w", err)
		}
		keys = append(keys, key)
		if thumb != nil {
			keys = append(keys, *thumb)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("delete album: %w", err)
	}

	if _, err := s.db.Exec(`DELETE FROM albums WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("delete album: %w", err)
	}
	return keys, nil
}

// Count returns the total number of albums.
func (s *AlbumStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM albums`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count albums: %w", err)
	}
	return count, nil
}

// replaceCategories rewrites the album's category memberships inside tx.
func replaceCategories(tx *sql.Tx, albumID uuid.UUID, categoryIDs []uuid.UUID) error {
	if _, err := tx.Exec(`DELETE FROM album_categories WHERE album_id = $1`, albumID); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}
	for _, cid := range categoryIDs {
		if _, err := tx.Exec(`
			INSERT INTO album_categories (album_id, category_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, albumID, cid); err != nil {
			return fmt.Errorf("insert category %s: %w", cid, err)
		}
	}
	return nil
}

// ensureID appends id to ids when absent.
func ensureID(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	if containsID(ids, id) {
		return ids
	}
	return append(ids, id)
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
