package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin account and the distinguished "Project Sites" gallery category
// that project-linked albums are locked to.
func Seed(db *sql.DB) error {
	// Check if any admin accounts exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM admin_users").Scan(&count); err != nil {
		return fmt.Errorf("seed check admin_users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO admin_users (email, password_hash, display_name, is_active)
		VALUES ($1, $2, $3, TRUE)
	`, "admin@groundwork.local", string(hash), "Admin")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	// The "Project Sites" category must always exist — album creation for
	// project-linked albums resolves it by name.
	_, err = db.Exec(`
		INSERT INTO categories (name, slug, type, display_order, is_active, color)
		VALUES ($1, $2, 'gallery', 0, TRUE, '#f59e0b')
		ON CONFLICT (type, name) DO NOTHING
	`, "Project Sites", "project-sites")
	if err != nil {
		return fmt.Errorf("seed project sites category: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@groundwork.local",
		"password", "admin",
	)

	return nil
}
