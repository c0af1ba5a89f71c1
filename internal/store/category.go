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

// CategoryStore manages categories in the database. Categories are
// partitioned by type (project/gallery/job); ordering operations only
// ever consider siblings within one partition.
type CategoryStore struct {
	db *sql.DB
}

// NewCategoryStore returns a new CategoryStore.
func NewCategoryStore(db *sql.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

const categoryColumns = `id, name, slug, type, display_order, is_active, color, created_at, updated_at`

// scanCategory scans a row into a Category struct.
func scanCategory(scanner interface{ Scan(...any) error }) (*models.Category, error) {
	var c models.Category
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Type, &c.DisplayOrder,
		&c.IsActive, &c.Color, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByType returns all categories of one type ordered for presentation,
// with usage counts (projects, albums, or job postings referencing each).
func (s *CategoryStore) ListByType(catType models.CategoryType) ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT c.id, c.name, c.slug, c.type, c.display_order, c.is_active, c.color,
		       c.created_at, c.updated_at,
		       (SELECT COUNT(*) FROM projects p WHERE p.category_id = c.id)
		     + (SELECT COUNT(*) FROM album_categories ac WHERE ac.category_id = c.id)
		     + (SELECT COUNT(*) FROM job_postings j WHERE j.department_id = c.id) AS usage_count
		FROM categories c
		WHERE c.type = $1
		ORDER BY c.display_order, c.created_at
	`, catType)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		var c models.Category
		err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &c.Type, &c.DisplayOrder,
			&c.IsActive, &c.Color, &c.CreatedAt, &c.UpdatedAt,
			&c.UsageCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, c)
	}
	return items, rows.Err()
}

// ListActiveByType returns the active categories of one type, ordered for
// presentation. Used by public filter bars and admin form dropdowns.
func (s *CategoryStore) ListActiveByType(catType models.CategoryType) ([]models.Category, error) {
	rows, err := s.db.Query(`
		SELECT `+categoryColumns+`
		FROM categories
		WHERE type = $1 AND is_active = TRUE
		ORDER BY display_order, created_at
	`, catType)
	if err != nil {
		return nil, fmt.Errorf("list active categories: %w", err)
	}
	defer rows.Close()

	var items []models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a category by ID. Returns nil if not found.
func (s *CategoryStore) FindByID(id uuid.UUID) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return c, nil
}

// FindByName retrieves a category by (type, name). Returns nil if not found.
// Used to resolve the distinguished "Project Sites" gallery category.
func (s *CategoryStore) FindByName(catType models.CategoryType, name string) (*models.Category, error) {
	row := s.db.QueryRow(`SELECT `+categoryColumns+` FROM categories WHERE type = $1 AND name = $2`, catType, name)
	c, err := scanCategory(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find category by name: %w", err)
	}
	return c, nil
}

// Create inserts a new category at the end of its type partition and
// returns it.
func (s *CategoryStore) Create(c *models.Category) (*models.Category, error) {
	order, err := s.nextDisplayOrder(c.Type)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO categories (name, slug, type, display_order, is_active, color)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+categoryColumns,
		c.Name, c.Slug, c.Type, order, c.IsActive, c.Color,
	)
	result, err := scanCategory(row)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return result, nil
}

// Update modifies an existing category. Type and display_order are not
// editable through Update — moves go through Move.
func (s *CategoryStore) Update(c *models.Category) error {
	_, err := s.db.Exec(`
		UPDATE categories SET
			name = $1, slug = $2, is_active = $3, color = $4, updated_at = NOW()
		WHERE id = $5
	`, c.Name, c.Slug, c.IsActive, c.Color, c.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category by ID. Returns ErrCategoryInUse when projects,
// albums, or job postings still reference it; the check and the delete run
// in one transaction so a concurrent assignment cannot slip between them.
func (s *CategoryStore) Delete(id uuid.UUID) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("delete category: begin tx: %w", err)
	}
	defer tx.Rollback()

	var refs int
	err = tx.QueryRow(`
		SELECT (SELECT COUNT(*) FROM projects WHERE category_id = $1)
		     + (SELECT COUNT(*) FROM album_categories WHERE category_id = $1)
		     + (SELECT COUNT(*) FROM job_postings WHERE department_id = $1)
	`, id).Scan(&refs)
	if err != nil {
		return fmt.Errorf("delete category: count refs: %w", err)
	}
	if refs > 0 {
		return ErrCategoryInUse
	}

	if _, err := tx.Exec(`DELETE FROM categories WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return tx.Commit()
}

// Move shifts a category one step up or down within its type partition by
// swapping display_order values with the adjacent neighbor. Both writes
// happen in a single transaction — a swap is either fully applied or not
// at all. Returns (false, nil) for the no-op edge cases (already first or
// last) and (true, nil) when a swap was committed.
func (s *CategoryStore) Move(id uuid.UUID, dir ordering.Direction) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("move category: begin tx: %w", err)
	}
	defer tx.Rollback()

	// Lock the sibling rows of the same type so concurrent moves serialize.
	rows, err := tx.Query(`
		SELECT id, display_order, created_at FROM categories
		WHERE type = (SELECT type FROM categories WHERE id = $1)
		FOR UPDATE
	`, id)
	if err != nil {
		return false, fmt.Errorf("move category: load siblings: %w", err)
	}

	var siblings []ordering.Sibling
	for rows.Next() {
		var sib ordering.Sibling
		if err := rows.Scan(&sib.ID, &sib.Order, &sib.CreatedAt); err != nil {
			rows.Close()
			return false, fmt.Errorf("move category: scan sibling: %w", err)
		}
		siblings = append(siblings, sib)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("move category: siblings: %w", err)
	}

	swap, ok := ordering.Plan(siblings, id, dir)
	if !ok {
		return false, nil // already at the edge, or unknown row
	}

	if err := applySwap(tx, "categories", swap); err != nil {
		return false, fmt.Errorf("move category: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("move category: commit: %w", err)
	}
	return true, nil
}

// applySwap writes both halves of a display_order swap inside tx.
func applySwap(tx *sql.Tx, table string, swap ordering.Swap) error {
	if _, err := tx.Exec(
		`UPDATE `+table+` SET display_order = $1 WHERE id = $2`,
		swap.NewOrder, swap.RowID,
	); err != nil {
		return fmt.Errorf("swap row: %w", err)
	}
	if _, err := tx.Exec(
		`UPDATE `+table+` SET display_order = $1 WHERE id = $2`,
		swap.NeighborOrder, swap.NeighborID,
	); err != nil {
		return fmt.Errorf("swap neighbor: %w", err)
	}
	return nil
}

// nextDisplayOrder returns the display_order for a new category at the end
// of its type partition.
func (s *CategoryStore) nextDisplayOrder(catType models.CategoryType) (int, error) {
	var maxOrder sql.NullInt64
	err := s.db.QueryRow(
		`SELECT MAX(display_order) FROM categories WHERE type = $1`, catType,
	).Scan(&maxOrder)
	if err != nil {
		return 0, err
	}
	if maxOrder.Valid {
		return int(maxOrder.Int64) + 1, nil
	}
	return 0, nil
}
