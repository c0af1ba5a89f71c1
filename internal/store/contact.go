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

// ContactStore handles contact-form submissions.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore returns a new ContactStore.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

const contactColumns = `id, name, email, phone, subject, message, status, created_at`

func scanContact(scanner interface{ Scan(...any) error }) (*models.ContactSubmission, error) {
	var c models.ContactSubmission
	err := scanner.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Subject,
		&c.Message, &c.Status, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all submissions, newest first.
func (s *ContactStore) List() ([]models.ContactSubmission, error) {
	return s.list(``)
}

// ListByStatus returns submissions in one triage state, newest first.
func (s *ContactStore) ListByStatus(status models.ContactStatus) ([]models.ContactSubmission, error) {
	return s.list(`WHERE status = $1`, status)
}

func (s *ContactStore) list(where string, args ...any) ([]models.ContactSubmission, error) {
	rows, err := s.db.Query(`
		SELECT `+contactColumns+` FROM contact_submissions `+where+`
		ORDER BY created_at DESC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list contact submissions: %w", err)
	}
	defer rows.Close()

	var items []models.ContactSubmission
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact submission: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// FindByID retrieves a submission by ID. Returns nil if not found.
func (s *ContactStore) FindByID(id uuid.UUID) (*models.ContactSubmission, error) {
	row := s.db.QueryRow(
		`SELECT `+contactColumns+` FROM contact_submissions WHERE id = $1`, id,
	)
	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find contact submission by id: %w", err)
	}
	return c, nil
}

// Create inserts a new submission. The status column defaults to "new"
// server-side, so the public form can never set its own triage state.
func (s *ContactStore) Create(c *models.ContactSubmission) (*models.ContactSubmission, error) {
	row := s.db.QueryRow(`
		INSERT INTO contact_submissions (name, email, phone, subject, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+contactColumns,
		c.Name, c.Email, c.Phone, c.Subject, c.Message,
	)
	result, err := scanContact(row)
	if err != nil {
		return nil, fmt.Errorf("create contact submission: %w", err)
	}
	return result, nil
}

// SetStatus updates a submission's triage state.
func (s *ContactStore) SetStatus(id uuid.UUID, status models.ContactStatus) error {
	switch status {
	case models.ContactStatusNew, models.ContactStatusRead, models.ContactStatusArchived:
	default:
		return fmt.Errorf("set contact status: unknown status %q", status)
	}
	_, err := s.db.Exec(
		`UPDATE contact_submissions SET status = $1 WHERE id = $2`, status, id,
	)
	if err != nil {
		return fmt.Errorf("set contact status: %w", err)
	}
	return nil
}

// Delete removes a submission by ID.
func (s *ContactStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM contact_submissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact submission: %w", err)
	}
	return nil
}

// CountNew returns the number of unread submissions, for the dashboard.
func (s *ContactStore) CountNew() (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM contact_submissions WHERE status = 'new'`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count new contact submissions: %w", err)
	}
	return count, nil
}
