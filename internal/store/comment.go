// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"amalcms/internal/models"
)

// CommentStore handles blog post comment database operations.
type CommentStore struct {
	db *sql.DB
}

// NewCommentStore creates a new CommentStore.
func NewCommentStore(db *sql.DB) *CommentStore {
	return &CommentStore{db: db}
}

const commentColumns = `id, post_id, author, email, body, approved, created_at`

func scanComment(row interface{ Scan(...any) error }) (*models.Comment, error) {
	c := &models.Comment{}
	err := row.Scan(&c.ID, &c.PostID, &c.Author, &c.Email, &c.Body, &c.Approved, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListApproved returns approved comments for a post, oldest first.
func (s *CommentStore) ListApproved(postID uuid.UUID) ([]models.Comment, error) {
	return s.list(`WHERE post_id = $1 AND approved = TRUE ORDER BY created_at`, postID)
}

// ListPending returns all unapproved comments across posts, for moderation.
func (s *CommentStore) ListPending() ([]models.Comment, error) {
	return s.list(`WHERE approved = FALSE ORDER BY created_at DESC`)
}

func (s *CommentStore) list(clause string, args ...any) ([]models.Comment, error) {
	rows, err := s.db.Query(`SELECT `+commentColumns+` FROM comments `+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var items []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// Create inserts a new comment awaiting moderation.
func (s *CommentStore) Create(postID uuid.UUID, author string, email *string, body string) (*models.Comment, error) {
	c, err := scanComment(s.db.QueryRow(`
		INSERT INTO comments (post_id, author, email, body)
		VALUES ($1, $2, $3, $4)
		RETURNING `+commentColumns,
		postID, author, email, body,
	))
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return c, nil
}

// Approve publishes a pending comment.
func (s *CommentStore) Approve(id uuid.UUID) error {
	res, err := s.db.Exec(`UPDATE comments SET approved = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("approve comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a comment.
func (s *CommentStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
