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

// TranslationStore handles per-locale overlay rows for projects and blog posts.
type TranslationStore struct {
	db *sql.DB
}

// NewTranslationStore creates a new TranslationStore.
func NewTranslationStore(db *sql.DB) *TranslationStore {
	return &TranslationStore{db: db}
}

const translationColumns = `id, kind, entity_id, lang, title, excerpt, content, people_helped, updated_at`

func scanTranslation(row interface{ Scan(...any) error }) (*models.Translation, error) {
	t := &models.Translation{}
	var content, people []byte
	err := row.Scan(
		&t.ID, &t.Kind, &t.EntityID, &t.Lang, &t.Title, &t.Excerpt,
		&content, &people, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := fromJSON(content, &t.Content); err != nil {
		return nil, err
	}
	if err := fromJSON(people, &t.PeopleHelped); err != nil {
		return nil, err
	}
	return t, nil
}

// ListForEntity returns all overlay rows for one content item.
func (s *TranslationStore) ListForEntity(kind models.Kind, entityID uuid.UUID) ([]models.Translation, error) {
	rows, err := s.db.Query(`
		SELECT `+translationColumns+` FROM translations
		WHERE kind = $1 AND entity_id = $2
		ORDER BY lang
	`, kind, entityID)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	defer rows.Close()

	var items []models.Translation
	for rows.Next() {
		t, err := scanTranslation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		items = append(items, *t)
	}
	return items, rows.Err()
}

// Find returns the overlay row for one (entity, lang) pair, or nil.
func (s *TranslationStore) Find(kind models.Kind, entityID uuid.UUID, lang string) (*models.Translation, error) {
	t, err := scanTranslation(s.db.QueryRow(`
		SELECT `+translationColumns+` FROM translations
		WHERE kind = $1 AND entity_id = $2 AND lang = $3
	`, kind, entityID, lang))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find translation: %w", err)
	}
	return t, nil
}

// Upsert writes an overlay row, replacing any existing one for the same
// (kind, entity_id, lang). Saving a translation is idempotent by design.
func (s *TranslationStore) Upsert(t *models.Translation) (*models.Translation, error) {
	content, err := toJSON(t.Content)
	if err != nil {
		return nil, err
	}
	people, err := toJSON(t.PeopleHelped)
	if err != nil {
		return nil, err
	}

	saved, err := scanTranslation(s.db.QueryRow(`
		INSERT INTO translations (kind, entity_id, lang, title, excerpt, content, people_helped)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (kind, entity_id, lang) DO UPDATE SET
			title = EXCLUDED.title,
			excerpt = EXCLUDED.excerpt,
			content = EXCLUDED.content,
			people_helped = EXCLUDED.people_helped,
			updated_at = NOW()
		RETURNING `+translationColumns,
		t.Kind, t.EntityID, t.Lang, t.Title, t.Excerpt, content, people,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert translation: %w", err)
	}
	return saved, nil
}

// Delete removes one overlay row.
func (s *TranslationStore) Delete(kind models.Kind, entityID uuid.UUID, lang string) error {
	res, err := s.db.Exec(`
		DELETE FROM translations WHERE kind = $1 AND entity_id = $2 AND lang = $3
	`, kind, entityID, lang)
	if err != nil {
		return fmt.Errorf("delete translation: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
