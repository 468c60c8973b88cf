// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"amalcms/internal/models"
)

// ErrInvitationUnusable is returned by Consume when the invitation is
// expired, already used, or unknown.
var ErrInvitationUnusable = errors.New("invitation expired or already used")

// InvitationStore handles invitation tokens for admin onboarding.
type InvitationStore struct {
	db *sql.DB
}

// NewInvitationStore creates a new InvitationStore.
func NewInvitationStore(db *sql.DB) *InvitationStore {
	return &InvitationStore{db: db}
}

const invitationColumns = `id, token, email, name, role, created_by, expires_at, used, created_at`

func scanInvitation(row interface{ Scan(...any) error }) (*models.Invitation, error) {
	i := &models.Invitation{}
	err := row.Scan(
		&i.ID, &i.Token, &i.Email, &i.Name, &i.Role,
		&i.CreatedBy, &i.ExpiresAt, &i.Used, &i.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return i, nil
}

// newToken generates a 64-character hex invitation token.
func newToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Create issues a new invitation valid for the default TTL.
func (s *InvitationStore) Create(email *string, name string, role models.Role, createdBy uuid.UUID) (*models.Invitation, error) {
	token, err := newToken()
	if err != nil {
		return nil, err
	}

	inv, err := scanInvitation(s.db.QueryRow(`
		INSERT INTO invitations (token, email, name, role, created_by, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+invitationColumns,
		token, email, name, role, createdBy,
		time.Now().Add(models.DefaultInvitationTTL),
	))
	if err != nil {
		return nil, fmt.Errorf("create invitation: %w", err)
	}
	return inv, nil
}

// List returns all invitations, newest first.
func (s *InvitationStore) List() ([]models.Invitation, error) {
	rows, err := s.db.Query(`SELECT ` + invitationColumns + ` FROM invitations ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list invitations: %w", err)
	}
	defer rows.Close()

	var items []models.Invitation
	for rows.Next() {
		i, err := scanInvitation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invitation: %w", err)
		}
		items = append(items, *i)
	}
	return items, rows.Err()
}

// FindByToken retrieves an invitation by its token. Returns nil if not found.
func (s *InvitationStore) FindByToken(token string) (*models.Invitation, error) {
	i, err := scanInvitation(s.db.QueryRow(
		`SELECT `+invitationColumns+` FROM invitations WHERE token = $1`, token))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find invitation: %w", err)
	}
	return i, nil
}

// Delete revokes an invitation before it is consumed.
func (s *InvitationStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM invitations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invitation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Consume atomically redeems an invitation: it locks the row, verifies the
// invitation is still usable, creates the admin account and marks the token
// used, all in one transaction. Two concurrent signups with the same token
// cannot both succeed.
func (s *InvitationStore) Consume(token, email, password string) (*models.Admin, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin consume: %w", err)
	}
	defer tx.Rollback()

	inv, err := scanInvitation(tx.QueryRow(`
		SELECT `+invitationColumns+` FROM invitations WHERE token = $1 FOR UPDATE
	`, token))
	if err == sql.ErrNoRows {
		return nil, ErrInvitationUnusable
	}
	if err != nil {
		return nil, fmt.Errorf("lock invitation: %w", err)
	}
	if !inv.Usable(time.Now()) {
		return nil, ErrInvitationUnusable
	}

	// Invitations created for a specific address bind the new account to it.
	if inv.Email != nil && *inv.Email != "" {
		email = *inv.Email
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	admin, err := scanAdmin(tx.QueryRow(`
		INSERT INTO admins (email, password_hash, name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING `+adminColumns,
		email, string(hash), inv.Name, inv.Role,
	))
	if err != nil {
		return nil, fmt.Errorf("create admin from invitation: %w", err)
	}

	if _, err := tx.Exec(`UPDATE invitations SET used = TRUE WHERE id = $1`, inv.ID); err != nil {
		return nil, fmt.Errorf("mark invitation used: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit consume: %w", err)
	}
	return admin, nil
}
