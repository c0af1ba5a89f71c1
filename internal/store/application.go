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

// ApplicationStore handles job applications submitted through the public
// careers pages and triaged in the back office.
type ApplicationStore struct {
	db *sql.DB
}

// NewApplicationStore returns a new ApplicationStore.
func NewApplicationStore(db *sql.DB) *ApplicationStore {
	return &ApplicationStore{db: db}
}

const applicationColumns = `a.id, a.job_id, a.name, a.email, a.phone,
	a.cover_letter, a.resume_s3_key, a.status, a.created_at`

func scanApplication(scanner interface{ Scan(...any) error }, withJobTitle bool) (*models.JobApplication, error) {
	var a models.JobApplication
	dest := []any{
		&a.ID, &a.JobID, &a.Name, &a.Email, &a.Phone,
		&a.CoverLetter, &a.ResumeS3Key, &a.Status, &a.CreatedAt,
	}
	if withJobTitle {
		dest = append(dest, &a.JobTitle)
	}
	if err := scanner.Scan(dest...); err != nil {
		return nil, err
	}
	return &a, nil
}

// List returns all applications, newest first, with the posting title joined.
func (s *ApplicationStore) List() ([]models.JobApplication, error) {
	return s.list(`ORDER BY a.created_at DESC`, nil)
}

// ListByJob returns the applications for one posting, newest first.
func (s *ApplicationStore) ListByJob(jobID uuid.UUID) ([]models.JobApplication, error) {
	return s.list(`WHERE a.job_id = $1 ORDER BY a.created_at DESC`, []any{jobID})
}

// ListByStatus returns applications in one triage state, newest first.
func (s *ApplicationStore) ListByStatus(status models.ApplicationStatus) ([]models.JobApplication, error) {
	return s.list(`WHERE a.status = $1 ORDER BY a.created_at DESC`, []any{status})
}

func (s *ApplicationStore) list(tail string, args []any) ([]models.JobApplication, error) {
	rows, err := s.db.Query(`
		SELECT `+applicationColumns+`, j.title
		FROM job_applications a
		JOIN job_postings j ON j.id = a.job_id
		`+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	defer rows.Close()

	var items []models.JobApplication
	for rows.Next() {
		a, err := scanApplication(rows, true)
		if err != nil {
			return nil, fmt.Errorf("scan application: %w", err)
		}
		items = append(items, *a)
	}
	return items, rows.Err()
}

// FindByID retrieves an application by ID with the posting title joined.
// Returns nil if not found.
func (s *ApplicationStore) FindByID(id uuid.UUID) (*models.JobApplication, error) {
	row := s.db.QueryRow(`
		SELECT `+applicationColumns+`, j.title
		FROM job_applications a
		JOIN job_postings j ON j.id = a.job_id
		WHERE a.id = $1
	`, id)
	a, err := scanApplication(row, true)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find application by id: %w", err)
	}
	return a, nil
}

// Create inserts a new application in status "new" and returns it. The
// status column defaults server-side so public submissions can never pick
// their own triage state.
func (s *ApplicationStore) Create(a *models.JobApplication) (*models.JobApplication, error) {
	row := s.db.QueryRow(`
		INSERT INTO job_applications (job_id, name, email, phone, cover_letter, resume_s3_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, job_id, name, email, phone,
		          cover_letter, resume_s3_key, status, created_at
	`, a.JobID, a.Name, a.Email, a.Phone, a.CoverLetter, a.ResumeS3Key)
	result, err := scanApplication(row, false)
	if err != nil {
		return nil, fmt.Errorf("create application: %w", err)
	}
	return result, nil
}

// SetStatus updates an application's triage state.
func (s *ApplicationStore) SetStatus(id uuid.UUID, status models.ApplicationStatus) error {
	if !models.ValidApplicationStatus(status) {
		return fmt.Errorf("set application status: unknown status %q", status)
	}
	_, err := s.db.Exec(
		`UPDATE job_applications SET status = $1 WHERE id = $2`, status, id,
	)
	if err != nil {
		return fmt.Errorf("set application status: %w", err)
	}
	return nil
}

// Delete removes an application by ID and returns the deleted row so the
// caller can clean up the resume in S3. Returns nil if it didn't exist.
func (s *ApplicationStore) Delete(id uuid.UUID) (*models.JobApplication, error) {
	row := s.db.QueryRow(`
		DELETE FROM job_applications WHERE id = $1
		RETURNING id, job_id, name, email, phone,
		          cover_letter, resume_s3_key, status, created_at
	`, id)
	a, err := scanApplication(row, false)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("delete application: %w", err)
	}
	return a, nil
}

// ResumeKeysByJob returns the resume keys stored for one posting, for S3
// cleanup before the posting is deleted.
func (s *ApplicationStore) ResumeKeysByJob(jobID uuid.UUID) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT resume_s3_key FROM job_applications
		WHERE job_id = $1 AND resume_s3_key IS NOT NULL
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("resume keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan resume key: %w", err)
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

// CountNew returns the number of untriaged applications, for the dashboard.
func (s *ApplicationStore) CountNew() (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM job_applications WHERE status = 'new'`,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count new applications: %w", err)
	}
	return count, nil
}
