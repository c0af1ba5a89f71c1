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

// JobStore handles job postings for the careers section.
type JobStore struct {
	db *sql.DB
}

// NewJobStore returns a new JobStore.
func NewJobStore(db *sql.DB) *JobStore {
	return &JobStore{db: db}
}

const jobColumns = `j.id, j.title, j.slug, j.department_id, j.location,
	j.employment_type, j.description, j.is_open, j.created_at, j.updated_at`

// List returns all postings for the admin console, newest first, with the
// department name and application count joined.
func (s *JobStore) List() ([]models.JobPosting, error) {
	return s.list(`ORDER BY j.created_at DESC`)
}

// ListOpen returns open postings for the public careers page.
func (s *JobStore) ListOpen() ([]models.JobPosting, error) {
	return s.list(`WHERE j.is_open = TRUE ORDER BY j.created_at DESC`)
}

func (s *JobStore) list(tail string) ([]models.JobPosting, error) {
	rows, err := s.db.Query(`
		SELECT ` + jobColumns + `,
		       COALESCE(c.name, ''),
		       (SELECT COUNT(*) FROM job_applications a WHERE a.job_id = j.id)
		FROM job_postings j
		LEFT JOIN categories c ON c.id = j.department_id
		` + tail)
	if err != nil {
		return nil, fmt.Errorf("list job postings: %w", err)
	}
	defer rows.Close()

	var items []models.JobPosting
	for rows.Next() {
		var j models.JobPosting
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Slug, &j.DepartmentID, &j.Location,
			&j.EmploymentType, &j.Description, &j.IsOpen, &j.CreatedAt, &j.UpdatedAt,
			&j.DepartmentName, &j.ApplicationCount,
		); err != nil {
			return nil, fmt.Errorf("scan job posting: %w", err)
		}
		items = append(items, j)
	}
	return items, rows.Err()
}

// FindByID retrieves a posting by ID. Returns nil if not found.
func (s *JobStore) FindByID(id uuid.UUID) (*models.JobPosting, error) {
	j := &models.JobPosting{}
	err := s.db.QueryRow(`
		SELECT `+jobColumns+` FROM job_postings j WHERE j.id = $1
	`, id).Scan(
		&j.ID, &j.Title, &j.Slug, &j.DepartmentID, &j.Location,
		&j.EmploymentType, &j.Description, &j.IsOpen, &j.CreatedAt, &j.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find job by id: %w", err)
	}
	return j, nil
}

// FindOpenBySlug retrieves an open posting by slug for the public detail
// page, with the department name joined. Returns nil if not found or closed.
func (s *JobStore) FindOpenBySlug(slug string) (*models.JobPosting, error) {
	j := &models.JobPosting{}
	err := s.db.QueryRow(`
		SELECT `+jobColumns+`, COALESCE(c.name, '')
		FROM job_postings j
		LEFT JOIN categories c ON c.id = j.department_id
		WHERE j.slug = $1 AND j.is_open = TRUE
	`, slug).Scan(
		&j.ID, &j.Title, &j.Slug, &j.DepartmentID, &j.Location,
		&j.EmploymentType, &j.Description, &j.IsOpen, &j.CreatedAt, &j.UpdatedAt,
		&j.DepartmentName,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find job by slug: %w", err)
	}
	return j, nil
}

// Create inserts a new posting and returns it.
func (s *JobStore) Create(j *models.JobPosting) (*models.JobPosting, error) {
	result := &models.JobPosting{}
	err := s.db.QueryRow(`
		INSERT INTO job_postings (title, slug, department_id, location, employment_type, description, is_open)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, title, slug, department_id, location,
		          employment_type, description, is_open, created_at, updated_at
	`, j.Title, j.Slug, j.DepartmentID, j.Location, j.EmploymentType, j.Description, j.IsOpen).Scan(
		&result.ID, &result.Title, &result.Slug, &result.DepartmentID, &result.Location,
		&result.EmploymentType, &result.Description, &result.IsOpen,
		&result.CreatedAt, &result.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create job posting: %w", err)
	}
	return result, nil
}

// Update modifies an existing posting.
func (s *JobStore) Update(j *models.JobPosting) error {
	_, err := s.db.Exec(`
		UPDATE job_postings SET
			title = $1, slug = $2, department_id = $3, location = $4,
			employment_type = $5, description = $6, is_open = $7, updated_at = NOW()
		WHERE id = $8
	`, j.Title, j.Slug, j.DepartmentID, j.Location,
		j.EmploymentType, j.Description, j.IsOpen, j.ID)
	if err != nil {
		return fmt.Errorf("update job posting: %w", err)
	}
	return nil
}

// Delete removes a posting by ID. Applications cascade, so the caller
// should collect resume keys for S3 cleanup first.
func (s *JobStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM job_postings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete job posting: %w", err)
	}
	return nil
}
