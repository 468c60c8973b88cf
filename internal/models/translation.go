// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Translation is a sparse per-locale overlay row for a project or blog
// post. At most one row exists per (kind, entity_id, lang); writes upsert.
// Nil fields mean "not translated — fall back to the primary locale".
//
// Content is not a parallel block array: it maps 0-based block indexes
// (as JSON string keys) to sparse trees mirroring the block payload,
// whose leaves are {lang: value} maps. See internal/i18n.
type Translation struct {
	ID           uuid.UUID      `json:"id"`
	Kind         Kind           `json:"kind"`
	EntityID     uuid.UUID      `json:"entity_id"`
	Lang         string         `json:"lang"`
	Title        *string        `json:"title,omitempty"`
	Excerpt      *string        `json:"excerpt,omitempty"`
	Content      map[string]any `json:"content,omitempty"`
	PeopleHelped []string       `json:"people_helped,omitempty"`
	UpdatedAt    time.Time      `json:"updated_at"`
}
