// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"groundwork/internal/models"
	"groundwork/internal/ordering"
)

// GalleryImageStore manages photos within albums. Ordering follows the
// same swap model as categories: moves exchange display_order values with
// the adjacent neighbor inside one transaction and never renumber.
type GalleryImageStore struct {
	db *sql.DB
}

// NewGalleryImageStore returns a new GalleryImageStore.
func NewGalleryImageStore(db *sql.DB) *GalleryImageStore {
	return &GalleryImageStore{db: db}
}

const imageColumns = `id, album_id, title, caption, s3_key, thumb_s3_key,
	display_order, is_featured, created_at`

func scanImage(scanner interface{ Scan(...any) error }) (*models.GalleryImage, error) {
	var img models.GalleryImage
	err := scanner.Scan(
		&img.ID, &img.AlbumID, &img.Title, &img.Caption, &img.S3Key,
		&img.ThumbS3Key, &img.DisplayOrder, &img.IsFeatured, &img.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &img, nil
}

// ListByAlbum returns an album's images in presentation order.
func (s *GalleryImageStore) ListByAlbum(albumID uuid.UUID) ([]models.GalleryImage, error) {
	rows, err := s.db.Query(`
		SELECT `+imageColumns+` FROM gallery_images
		WHERE album_id = $1
		ORDER BY display_order, created_at
	`, albumID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	var items []models.GalleryImage
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		items = append(items, *img)
	}
	return items, rows.Err()
}

// FindByID retrieves an image by ID. Returns nil if not found.
func (s *GalleryImageStore) FindByID(id uuid.UUID) (*models.GalleryImage, error) {
	row := s.db.QueryRow(`SELECT `+imageColumns+` FROM gallery_images WHERE id = $1`, id)
	img, err := scanImage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find image by id: %w", err)
	}
	return img, nil
}

// Create inserts a new image at the end of its album and returns it.
func (s *GalleryImageStore) Create(img *models.GalleryImage) (*models.GalleryImage, error) {
	var maxOrder sql.NullInt64
	err := s.db.QueryRow(
		`SELECT MAX(display_order) FROM gallery_images WHERE album_id = $1`, img.AlbumID,
	).Scan(&maxOrder)
	if err != nil {
		return nil, fmt.Errorf("create image: next order: %w", err)
	}
	order := 0
	if maxOrder.Valid {
		order = int(maxOrder.Int64) + 1
	}

	row := s.db.QueryRow(`
		INSERT INTO gallery_images (album_id, title, caption, s3_key, thumb_s3_key, display_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+imageColumns,
		img.AlbumID, img.Title, img.Caption, img.S3Key, img.ThumbS3Key, order,
	)
	result, err := scanImage(row)
	if err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}
	return result, nil
}

// Update modifies an image's title and caption.
func (s *GalleryImageStore) Update(img *models.GalleryImage) error {
	_, err := s.db.Exec(`
		UPDATE gallery_images SET title = $1, caption = $2 WHERE id = $3
	`, img.Title, img.Caption, img.ID)
	if err != nil {
		return fmt.Errorf("update image: %w", err)
	}
	return nil
}

// Delete removes an image by ID and returns the deleted row so the caller
// can clean up the S3 objects. Returns nil if the image didn't exist.
func (s *GalleryImageStore) Delete(id uuid.UUID) (*models.GalleryImage, error) {
	row := s.db.QueryRow(`
		DELETE FROM gallery_images WHERE id = $1
		RETURNING `+imageColumns, id)
	img, err := scanImage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete image: %w", err)
	}
	return img, nil
}

// Move shifts an image one step up or down within its album by swapping
// display_order values with the adjacent neighbor, in one transaction.
// Returns (false, nil) when the image is already first or last.
func (s *GalleryImageStore) Move(id uuid.UUID, dir ordering.Direction) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("move image: begin tx: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(`
		SELECT id, display_order, created_at FROM gallery_images
		WHERE album_id = (SELECT album_id FROM gallery_images WHERE id = $1)
		FOR UPDATE
	`, id)
	if err != nil {
		return false, fmt.Errorf("move image: load siblings: %w", err)
	}

	var siblings []ordering.Sibling
	for rows.Next() {
		var sib ordering.Sibling
		if err := rows.Scan(&sib.ID, &sib.Order, &sib.CreatedAt); err != nil {
			rows.Close()
			return false, fmt.Errorf("move image: scan sibling: %w", err)
		}
		siblings = append(siblings, sib)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("move image: siblings: %w", err)
	}

	swap, ok := ordering.Plan(siblings, id, dir)
	if !ok {
		return false, nil
	}

	if err := applySwap(tx, "gallery_images", swap); err != nil {
		return false, fmt.Errorf("move image: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("move image: commit: %w", err)
	}
	return true, nil
}

// SetFeatured marks one image as the album's featured image, unsetting
// any previously featured image in the same album. Both writes run in one
// transaction so the album never ends up with two featured images.
func (s *GalleryImageStore) SetFeatured(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("feature image: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		UPDATE gallery_images SET is_featured = FALSE
		WHERE album_id = (SELECT album_id FROM gallery_images WHERE id = $1)
		  AND is_featured = TRUE
	`, id); err != nil {
		return fmt.Errorf("feature image: unset previous: %w", err)
	}

	if _, err := tx.Exec(
		`UPDATE gallery_images SET is_featured = TRUE WHERE id = $1`, id,
	); err != nil {
		return fmt.Errorf("feature image: %w", err)
	}
	return tx.Commit()
}

// Count returns the total number of gallery images.
func (s *GalleryImageStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM gallery_images`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count images: %w", err)
	}
	return count, nil
}
