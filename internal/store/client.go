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

// ClientStore handles customer records and their logo references.
type ClientStore struct {
	db *sql.DB
}

// NewClientStore returns a new ClientStore.
func NewClientStore(db *sql.DB) *ClientStore {
	return &ClientStore{db: db}
}

const clientColumns = `id, name, website, logo_s3_key, show_on_website,
	display_order, created_at, updated_at`

func scanClient(scanner interface{ Scan(...any) error }) (*models.Client, error) {
	var c models.Client
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Website, &c.LogoS3Key, &c.ShowOnWebsite,
		&c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all clients in presentation order.
func (s *ClientStore) List() ([]models.Client, error) {
	return s.list(``)
}

// ListVisible returns clients for the public logo strip. Hidden clients
// are excluded before anything else.
func (s *ClientStore) ListVisible() ([]models.Client, error) {
	return s.list(`WHERE show_on_website = TRUE`)
}

func (s *ClientStore) list(where string) ([]models.Client, error) {
	rows, err := s.db.Query(`
		SELECT ` + clientColumns + ` FROM clients ` + where + `
		ORDER BY display_order, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var items []models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a client by ID. Returns nil if not found.
func (s *ClientStore) FindByID(id uuid.UUID) (*models.Client, error) {
	row := s.db.QueryRow(`SELECT `+clientColumns+` FROM clients WHERE id = $1`, id)
	c, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find client by id: %w", err)
	}
	return c, nil
}

// Create inserts a new client and returns it.
func (s *ClientStore) Create(c *models.Client) (*models.Client, error) {
	row := s.db.QueryRow(`
		INSERT INTO clients (name, website, logo_s3_key, show_on_website, display_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+clientColumns,
		c.Name, c.Website, c.LogoS3Key, c.ShowOnWebsite, c.DisplayOrder,
	)
	result, err := scanClient(row)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return result, nil
}

// Update modifies an existing client, including its logo key.
func (s *ClientStore) Update(c *models.Client) error {
	_, err := s.db.Exec(`
		UPDATE clients SET
			name = $1, website = $2, logo_s3_key = $3, show_on_website = $4,
			display_order = $5, updated_at = NOW()
		WHERE id = $6
	`, c.Name, c.Website, c.LogoS3Key, c.ShowOnWebsite, c.DisplayOrder, c.ID)
	if err != nil {
		return fmt.Errorf("update client: %w", err)
	}
	return nil
}

// Delete removes a client by ID and returns the deleted row so the caller
// can clean up the logo in S3. Projects referencing the client keep
// existing with the reference cleared (ON DELETE SET NULL).
func (s *ClientStore) Delete(id uuid.UUID) (*models.Client, error) {
	row := s.db.QueryRow(`
		DELETE FROM clients WHERE id = $1
		RETURNING `+clientColumns, id)
	c, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete client: %w", err)
	}
	return c, nil
}

// Count returns the total number of clients.
func (s *ClientStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM clients`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return count, nil
}
