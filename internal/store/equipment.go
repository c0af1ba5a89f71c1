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

// EquipmentStore handles the fleet section.
type EquipmentStore struct {
	db *sql.DB
}

// NewEquipmentStore returns a new EquipmentStore.
func NewEquipmentStore(db *sql.DB) *EquipmentStore {
	return &EquipmentStore{db: db}
}

const equipmentColumns = `id, name, description, image_s3_key, show_on_website,
	display_order, created_at, updated_at`

func scanEquipment(scanner interface{ Scan(...any) error }) (*models.Equipment, error) {
	var e models.Equipment
	err := scanner.Scan(
		&e.ID, &e.Name, &e.Description, &e.ImageS3Key, &e.ShowOnWebsite,
		&e.DisplayOrder, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns all fleet items in presentation order.
func (s *EquipmentStore) List() ([]models.Equipment, error) {
	return s.list(``)
}

// ListVisible returns fleet items for the public site.
func (s *EquipmentStore) ListVisible() ([]models.Equipment, error) {
	return s.list(`WHERE show_on_website = TRUE`)
}

func (s *EquipmentStore) list(where string) ([]models.Equipment, error) {
	rows, err := s.db.Query(`
		SELECT ` + equipmentColumns + ` FROM equipment ` + where + `
		ORDER BY display_order, created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	var items []models.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		items = append(items, *e)
	}
	return items, rows.Err()
}

// FindByID retrieves a fleet item by ID. Returns nil if not found.
func (s *EquipmentStore) FindByID(id uuid.UUID) (*models.Equipment, error) {
	row := s.db.QueryRow(`SELECT `+equipmentColumns+` FROM equipment WHERE id = $1`, id)
	e, err := scanEquipment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find equipment by id: %w", err)
	}
	return e, nil
}

// Create inserts a new fleet item at the end of the list and returns it.
func (s *EquipmentStore) Create(e *models.Equipment) (*models.Equipment, error) {
	var maxOrder sql.NullInt64
	err := s.db.QueryRow(`SELECT MAX(display_order) FROM equipment`).Scan(&maxOrder)
	if err != nil {
		return nil, fmt.Errorf("create equipment: next order: %w", err)
	}
	order := 0
	if maxOrder.Valid {
		order = int(maxOrder.Int64) + 1
	}

	row := s.db.QueryRow(`
		INSERT INTO equipment (name, description, image_s3_key, show_on_website, display_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+equipmentColumns,
		e.Name, e.Description, e.ImageS3Key, e.ShowOnWebsite, order,
	)
	result, err := scanEquipment(row)
	if err != nil {
		return nil, fmt.Errorf("create equipment: %w", err)
	}
	return result, nil
}

// Update modifies a fleet item, including its image key.
func (s *EquipmentStore) Update(e *models.Equipment) error {
	_, err := s.db.Exec(`
		UPDATE equipment SET
			name = $1, description = $2, image_s3_key = $3,
			show_on_website = $4, updated_at = NOW()
		WHERE id = $5
	`, e.Name, e.Description, e.ImageS3Key, e.ShowOnWebsite, e.ID)
	if err != nil {
		return fmt.Errorf("update equipment: %w", err)
	}
	return nil
}

// Delete removes a fleet item and returns the deleted row so the caller
// can clean up the image in S3. Returns nil if it didn't exist.
func (s *EquipmentStore) Delete(id uuid.UUID) (*models.Equipment, error) {
	row := s.db.QueryRow(`
		DELETE FROM equipment WHERE id = $1
		RETURNING `+equipmentColumns, id)
	e, err := scanEquipment(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete equipment: %w", err)
	}
	return e, nil
}

// Move shifts a fleet item one step up or down by swapping display_order
// values with the adjacent neighbor, in one transaction. Returns
// (false, nil) when the item is already first or last.
func (s *EquipmentStore) Move(id uuid.UUID, dir ordering.Direction) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("move equipment: begin tx: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.Query(
		`SELECT id, display_order, created_at FROM equipment FOR UPDATE`,
	)
	if err != nil {
		return false, fmt.Errorf("move equipment: load siblings: %w", err)
	}

	var siblings []ordering.Sibling
	for rows.Next() {
		var sib ordering.Sibling
		if err := rows.Scan(&sib.ID, &sib.Order, &sib.CreatedAt); err != nil {
			rows.Close()
			return false, fmt.Errorf("move equipment: scan sibling: %w", err)
		}
		siblings = append(siblings, sib)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("move equipment: siblings: %w", err)
	}

	swap, ok := ordering.Plan(siblings, id, dir)
	if !ok {
		return false, nil
	}

	if err := applySwap(tx, "equipment", swap); err != nil {
		return false, fmt.Errorf("move equipment: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("move equipment: commit: %w", err)
	}
	return true, nil
}
