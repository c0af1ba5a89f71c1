// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"groundwork/internal/models"
)

// AdminUserStore handles staff accounts. The table doubles as the
// back-office allow-list: only rows with is_active = TRUE pass the gate.
type AdminUserStore struct {
	db *sql.DB
}

// NewAdminUserStore returns a new AdminUserStore.
func NewAdminUserStore(db *sql.DB) *AdminUserStore {
	return &AdminUserStore{db: db}
}

const adminUserColumns = `id, email, password_hash, display_name, is_active,
	created_at, updated_at`

func scanAdminUser(scanner interface{ Scan(...any) error }) (*models.AdminUser, error) {
	var u models.AdminUser
	err := scanner.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.DisplayName, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// List returns all staff accounts ordered by email.
func (s *AdminUserStore) List() ([]models.AdminUser, error) {
	rows, err := s.db.Query(
		`SELECT ` + adminUserColumns + ` FROM admin_users ORDER BY email`,
	)
	if err != nil {
		return nil, fmt.Errorf("list admin users: %w", err)
	}
	defer rows.Close()

	var items []models.AdminUser
	for rows.Next() {
		u, err := scanAdminUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan admin user: %w", err)
		}
		items = append(items, *u)
	}
	return items, rows.Err()
}

// FindByID retrieves an account by ID. Returns nil if not found.
func (s *AdminUserStore) FindByID(id uuid.UUID) (*models.AdminUser, error) {
	row := s.db.QueryRow(`SELECT `+adminUserColumns+` FROM admin_users WHERE id = $1`, id)
	u, err := scanAdminUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find admin user by id: %w", err)
	}
	return u, nil
}

// FindByEmail retrieves an account by email, case-insensitively.
// Returns nil if not found.
func (s *AdminUserStore) FindByEmail(email string) (*models.AdminUser, error) {
	row := s.db.QueryRow(
		`SELECT `+adminUserColumns+` FROM admin_users WHERE LOWER(email) = LOWER($1)`,
		strings.TrimSpace(email),
	)
	u, err := scanAdminUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find admin user by email: %w", err)
	}
	return u, nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (s *AdminUserStore) CheckPassword(u *models.AdminUser, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsAllowed reports whether the account id still exists and is active.
// Sessions carry only the user id, so the gate re-checks the allow-list
// on every admin request.
func (s *AdminUserStore) IsAllowed(id uuid.UUID) (bool, error) {
	var active bool
	err := s.db.QueryRow(
		`SELECT is_active FROM admin_users WHERE id = $1`, id,
	).Scan(&active)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check admin user: %w", err)
	}
	return active, nil
}

// Create inserts a new account with a bcrypt-hashed password.
func (s *AdminUserStore) Create(email, password, displayName string) (*models.AdminUser, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("create admin user: hash password: %w", err)
	}
	row := s.db.QueryRow(`
		INSERT INTO admin_users (email, password_hash, display_name, is_active)
		VALUES (LOWER($1), $2, $3, TRUE)
		RETURNING `+adminUserColumns,
		strings.TrimSpace(email), string(hash), displayName,
	)
	u, err := scanAdminUser(row)
	if err != nil {
		return nil, fmt.Errorf("create admin user: %w", err)
	}
	return u, nil
}

// SetPassword replaces an account's password hash.
func (s *AdminUserStore) SetPassword(id uuid.UUID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("set password: hash: %w", err)
	}
	_, err = s.db.Exec(
		`UPDATE admin_users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		string(hash), id,
	)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	return nil
}

// SetActive toggles the allow-list flag. Deactivated accounts are signed
// out on their next admin request.
func (s *AdminUserStore) SetActive(id uuid.UUID, active bool) error {
	_, err := s.db.Exec(
		`UPDATE admin_users SET is_active = $1, updated_at = NOW() WHERE id = $2`,
		active, id,
	)
	if err != nil {
		return fmt.Errorf("set admin user active: %w", err)
	}
	return nil
}
