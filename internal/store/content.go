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

// ContentStore handles all project and blog post database operations.
// Both entity kinds share the unified contents table.
type ContentStore struct {
	db *sql.DB
}

// NewContentStore creates a new ContentStore with the given database connection.
func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

const contentColumns = `id, kind, slug, title, excerpt, blocks, people_helped,
       categories, goals, status, cover_image, created_at, updated_at`

// scanContent reads one contents row, decoding the JSONB columns.
func scanContent(row interface{ Scan(...any) error }) (*models.Content, error) {
	c := &models.Content{}
	var blocks, people, categories, goals []byte
	err := row.Scan(
		&c.ID, &c.Kind, &c.Slug, &c.Title, &c.Excerpt, &blocks, &people,
		&categories, &goals, &c.Status, &c.CoverImage, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := fromJSON(blocks, &c.Blocks); err != nil {
		return nil, err
	}
	if err := fromJSON(people, &c.PeopleHelped); err != nil {
		return nil, err
	}
	if err := fromJSON(categories, &c.Categories); err != nil {
		return nil, err
	}
	if err := fromJSON(goals, &c.Goals); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns all content of the given kind, newest first. When status is
// non-empty, only items in that state are returned.
func (s *ContentStore) List(kind models.Kind, status models.Status) ([]models.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE kind = $1`
	args := []any{kind}
	if status != "" {
		query += ` AND status = $2`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	defer rows.Close()

	var items []models.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, *c)
	}
	return items, rows.Err()
}

// ListPublished returns publicly visible content of the given kind.
func (s *ContentStore) ListPublished(kind models.Kind) ([]models.Content, error) {
	return s.List(kind, models.StatusPublished)
}

// FindByID retrieves a content item by its UUID. Returns nil if not found.
func (s *ContentStore) FindByID(id uuid.UUID) (*models.Content, error) {
	c, err := scanContent(s.db.QueryRow(
		`SELECT `+contentColumns+` FROM contents WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by id: %w", err)
	}
	return c, nil
}

// FindBySlug retrieves a content item of the given kind by slug.
// Returns nil if not found.
func (s *ContentStore) FindBySlug(kind models.Kind, slug string) (*models.Content, error) {
	c, err := scanContent(s.db.QueryRow(
		`SELECT `+contentColumns+` FROM contents WHERE kind = $1 AND slug = $2`, kind, slug))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find content by slug: %w", err)
	}
	return c, nil
}

// Slugs returns every slug of the given kind, for de-duplication.
func (s *ContentStore) Slugs(kind models.Kind) ([]string, error) {
	rows, err := s.db.Query(`SELECT slug FROM contents WHERE kind = $1`, kind)
	if err != nil {
		return nil, fmt.Errorf("list slugs: %w", err)
	}
	defer rows.Close()

	var slugs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan slug: %w", err)
		}
		slugs = append(slugs, s)
	}
	return slugs, rows.Err()
}

// Create inserts a new content item and returns it with generated fields.
func (s *ContentStore) Create(c *models.Content) (*models.Content, error) {
	blocks, err := toJSON(c.Blocks)
	if err != nil {
		return nil, err
	}
	people, err := toJSON(c.PeopleHelped)
	if err != nil {
		return nil, err
	}
	categories, err := toJSON(c.Categories)
	if err != nil {
		return nil, err
	}
	goals, err := toJSON(c.Goals)
	if err != nil {
		return nil, err
	}

	created, err := scanContent(s.db.QueryRow(`
		INSERT INTO contents (kind, slug, title, excerpt, blocks, people_helped,
		                      categories, goals, status, cover_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+contentColumns,
		c.Kind, c.Slug, c.Title, c.Excerpt, blocks, people,
		categories, goals, c.Status, c.CoverImage,
	))
	if err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return created, nil
}

// Update modifies an existing content item and refreshes updated_at.
func (s *ContentStore) Update(c *models.Content) error {
	blocks, err := toJSON(c.Blocks)
	if err != nil {
		return err
	}
	people, err := toJSON(c.PeopleHelped)
	if err != nil {
		return err
	}
	categories, err := toJSON(c.Categories)
	if err != nil {
		return err
	}
	goals, err := toJSON(c.Goals)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE contents SET
			slug = $1, title = $2, excerpt = $3, blocks = $4, people_helped = $5,
			categories = $6, goals = $7, status = $8, cover_image = $9,
			updated_at = NOW()
		WHERE id = $10
	`, c.Slug, c.Title, c.Excerpt, blocks, people,
		categories, goals, c.Status, c.CoverImage, c.ID,
	)
	if err != nil {
		return fmt.Errorf("update content: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a content item by ID. Translations and comments cascade
// in the schema.
func (s *ContentStore) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM contents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
