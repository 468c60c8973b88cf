package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data.
// It creates a default super admin if no admins exist yet.
func Seed(db *sql.DB) error {
	// Check if any admins exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM admins").Scan(&count); err != nil {
		return fmt.Errorf("seed check admins: %w", err)
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

	// Insert the first super admin. Further admins join via invitations.
	_, err = db.Exec(`
		INSERT INTO admins (email, password_hash, name, role)
		VALUES ($1, $2, $3, $4)
	`, "admin@amal.local", string(hash), "Admin", "super_admin")
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default super admin",
		"email", "admin@amal.local",
		"password", "admin",
	)

	return nil
}
