// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"groundwork/internal/models"
)

// ProjectStore handles all project-related database operations.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

const projectColumns = `p.id, p.title, p.slug, p.description, p.category_id, p.client_id,
	p.location, p.status, p.is_featured, p.show_on_website,
	p.started_at, p.completed_at, p.created_at, p.updated_at`

// scanProject scans a bare project row (no joins). The client ref carries
// only the ID — callers needing client fields must use a joined query and
// check ClientRef.Resolved().
func scanProject(scanner interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	var clientID *uuid.UUID
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.CategoryID, &clientID,
		&p.Location, &p.Status, &p.IsFeatured, &p.ShowOnWebsite,
		&p.StartedAt, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Client = models.ClientRef{ID: clientID}
	return &p, nil
}

// ProjectFilter narrows a visible-project listing. The show_on_website
// filter is NOT part of it — visibility is applied unconditionally before
// any of these.
type ProjectFilter struct {
	CategoryID *uuid.UUID
	Status     models.ProjectStatus
	Search     string // matched against title and location, case-insensitive
	Sort       string // "newest" (default), "oldest", "title"
}

// List returns all projects for the admin console, newest first, with the
// client row joined (resolved ClientRef) and the category name populated.
func (s *ProjectStore) List() ([]models.Project, error) {
	rows, err := s.db.Query(`
		SELECT ` + projectColumns + `,
		       c.name, c.website, c.logo_s3_key,
		       COALESCE(cat.name, '')
		FROM projects p
		LEFT JOIN clients c ON c.id = p.client_id
		LEFT JOIN categories cat ON cat.id = p.category_id
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	return scanJoinedProjects(rows)
}

// ListVisible returns projects for the public site. Rows with
// show_on_website=false are excluded at the SQL layer before the filter is
// applied; featured projects sort first regardless of the requested sort.
func (s *ProjectStore) ListVisible(f ProjectFilter) ([]models.Project, error) {
	where := []string{"p.show_on_website = TRUE"}
	var args []any

	if f.CategoryID != nil {
		args = append(args, *f.CategoryID)
		where = append(where, fmt.Sprintf("p.category_id = $%d", len(args)))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where = append(where, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		where = append(where, fmt.Sprintf("(p.title ILIKE $%d OR p.location ILIKE $%d)", len(args), len(args)))
	}

	orderBy := "p.is_featured DESC, p.created_at DESC"
	switch f.Sort {
	case "oldest":
		orderBy = "p.is_featured DESC, p.created_at ASC"
	case "title":
		orderBy = "p.is_featured DESC, p.title ASC"
	}

	query := `
		SELECT ` + projectColumns + `,
		       c.name, c.website, c.logo_s3_key,
		       COALESCE(cat.name, '')
		FROM projects p
		LEFT JOIN clients c ON c.id = p.client_id
		LEFT JOIN categories cat ON cat.id = p.category_id
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY ` + orderBy

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list visible projects: %w", err)
	}
	defer rows.Close()
	return scanJoinedProjects(rows)
}

// ListFeaturedVisible returns the visible featured projects for the
// homepage, newest first.
func (s *ProjectStore) ListFeaturedVisible() ([]models.Project, error) {
	rows, err := s.db.Query(`
		SELECT ` + projectColumns + `,
		       c.name, c.website, c.logo_s3_key,
		       COALESCE(cat.name, '')
		FROM projects p
		LEFT JOIN clients c ON c.id = p.client_id
		LEFT JOIN categories cat ON cat.id = p.category_id
		WHERE p.show_on_website = TRUE AND p.is_featured = TRUE
		ORDER BY p.created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list featured projects: %w", err)
	}
	defer rows.Close()
	return scanJoinedProjects(rows)
}

// scanJoinedProjects scans rows produced by the joined project queries.
func scanJoinedProjects(rows *sql.Rows) ([]models.Project, error) {
	var items []models.Project
	for rows.Next() {
		var p models.Project
		var clientID *uuid.UUID
		var clientName, clientWebsite *string
		var clientLogo *string
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Slug, &p.Description, &p.CategoryID, &clientID,
			&p.Location, &p.Status, &p.IsFeatured, &p.ShowOnWebsite,
			&p.StartedAt, &p.CompletedAt, &p.CreatedAt, &p.UpdatedAt,
			&clientName, &clientWebsite, &clientLogo,
			&p.CategoryName,
		); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		p.Client = models.ClientRef{ID: clientID}
		if clientID != nil && clientName != nil {
			p.Client.Client = &models.Client{
				ID:        *clientID,
				Name:      *clientName,
				Website:   deref(clientWebsite),
				LogoS3Key: clientLogo,
			}
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FindByID retrieves a project by its UUID. Returns nil if not found.
// The client ref is unresolved (ID only).
func (s *ProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	row := s.db.QueryRow(`SELECT `+projectColumns+` FROM projects p WHERE p.id = $1`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return p, nil
}

// FindVisibleBySlug retrieves a visible project by slug for the public
// detail page, with the client joined. Returns nil if not found or hidden.
func (s *ProjectStore) FindVisibleBySlug(slug string) (*models.Project, error) {
	rows, err := s.db.Query(`
		SELECT `+projectColumns+`,
		       c.name, c.website, c.logo_s3_key,
		       COALESCE(cat.name, '')
		FROM projects p
		LEFT JOIN clients c ON c.id = p.client_id
		LEFT JOIN categories cat ON cat.id = p.category_id
		WHERE p.slug = $1 AND p.show_on_website = TRUE
	`, slug)
	if err != nil {
		return nil, fmt.Errorf("find project by slug: %w", err)
	}
	defer rows.Close()

	items, err := scanJoinedProjects(rows)
	if err != nil {
		return nil, fmt.Errorf("find project by slug: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// Create inserts a new project and returns it. A project cannot be created
// directly as featured — feature it with SetFeatured so the cap applies.
func (s *ProjectStore) Create(p *models.Project) (*models.Project, error) {
	row := s.db.QueryRow(`
		INSERT INTO projects (title, slug, description, category_id, client_id,
		                      location, status, is_featured, show_on_website,
		                      started_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $9, $10)
		RETURNING id, title, slug, description, category_id, client_id,
		          location, status, is_featured, show_on_website,
		          started_at, completed_at, created_at, updated_at`,
		p.Title, p.Slug, p.Description, p.CategoryID, p.Client.ID,
		p.Location, p.Status, p.ShowOnWebsite, p.StartedAt, p.CompletedAt,
	)
	result, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return result, nil
}

// Update modifies an existing project. The featured flag is managed
// exclusively by SetFeatured.
func (s *ProjectStore) Update(p *models.Project) error {
	_, err := s.db.Exec(`
		UPDATE projects SET
			title = $1, slug = $2, description = $3, category_id = $4,
			client_id = $5, location = $6, status = $7, show_on_website = $8,
			started_at = $9, completed_at = $10, updated_at = NOW()
		WHERE id = $11
	`, p.Title, p.Slug, p.Description, p.CategoryID, p.Client.ID,
		p.Location, p.Status, p.ShowOnWebsite, p.StartedAt, p.CompletedAt, p.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// Delete removes a project by ID. Linked albums keep existing with their
// project reference cleared (ON DELETE SET NULL).
func (s *ProjectStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// featuredCapLockID keys the advisory lock that serializes featured-cap
// checks. Arbitrary but stable.
const featuredCapLockID = 74201103

// SetFeatured flips a project's featured flag. Featuring takes a
// transaction-scoped advisory lock before counting, so two concurrent
// editors cannot jointly exceed the cap: row locks on the currently
// featured set would not do — a row featured by a concurrent transaction
// is a phantom this transaction's count never sees. Returns
// ErrFeaturedLimit when the cap is already reached.
func (s *ProjectStore) SetFeatured(id uuid.UUID, featured bool) error {
	if !featured {
		if _, err := s.db.Exec(
			`UPDATE projects SET is_featured = FALSE, updated_at = NOW() WHERE id = $1`, id,
		); err != nil {
			return fmt.Errorf("unfeature project: %w", err)
		}
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("feature project: begin tx: %w", err)
	}
	defer tx.Rollback()

	// Held until commit or rollback; a concurrent SetFeatured blocks here.
	if _, err := tx.Exec(`SELECT pg_advisory_xact_lock($1)`, featuredCapLockID); err != nil {
		return fmt.Errorf("feature project: acquire cap lock: %w", err)
	}

	var alreadyFeatured bool
	err = tx.QueryRow(`SELECT is_featured FROM projects WHERE id = $1`, id).Scan(&alreadyFeatured)
	if err == sql.ErrNoRows {
		// Unknown id is a no-op; handlers 404 before calling.
		return nil
	}
	if err != nil {
		return fmt.Errorf("feature project: %w", err)
	}
	if alreadyFeatured {
		return nil // no-op
	}

	var count int
	if err := tx.QueryRow(
		`SELECT COUNT(*) FROM projects WHERE is_featured = TRUE`,
	).Scan(&count); err != nil {
		return fmt.Errorf("feature project: count: %w", err)
	}
	if count >= models.MaxFeaturedProjects {
		return ErrFeaturedLimit
	}

	if _, err := tx.Exec(
		`UPDATE projects SET is_featured = TRUE, updated_at = NOW() WHERE id = $1`, id,
	); err != nil {
		return fmt.Errorf("feature project: %w", err)
	}
	return tx.Commit()
}

// CountFeatured returns the number of currently featured projects.
func (s *ProjectStore) CountFeatured() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM projects WHERE is_featured = TRUE`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count featured projects: %w", err)
	}
	return count, nil
}

// Count returns the total number of projects.
func (s *ProjectStore) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM projects`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return count, nil
}
