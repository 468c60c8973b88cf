// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Kind distinguishes projects from blog posts in the unified contents table.
// The two are structurally identical; only their public presentation differs.
type Kind string

const (
	KindProject  Kind = "project"
	KindBlogPost Kind = "blog_post"
)

// Status represents the publishing state of a content item.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// ValidStatus reports whether s is a known publishing state.
func ValidStatus(s Status) bool {
	return s == StatusDraft || s == StatusPublished || s == StatusArchived
}

// Goal is one entry in a project's ordered goal list. Priority always
// equals the goal's 1-based position in the list; every mutation renumbers.
type Goal struct {
	ID       string `json:"id"`
	Text     string `json:"text"`
	Priority int    `json:"priority"`
}

// Content represents a project or blog post. Primary-locale (French)
// values live directly on the record; en/ar values come from translation
// overlay rows resolved at read time.
type Content struct {
	ID           uuid.UUID `json:"id"`
	Kind         Kind      `json:"kind"`
	Slug         string    `json:"slug"`
	Title        string    `json:"title"`
	Excerpt      string    `json:"excerpt"`
	Blocks       []Block   `json:"content"`
	PeopleHelped []string  `json:"people_helped"`
	Categories   []string  `json:"categories"`
	Goals        []Goal    `json:"goals"`
	Status       Status    `json:"status"`
	CoverImage   *string   `json:"cover_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsPublished returns true if the content item is publicly visible.
func (c *Content) IsPublished() bool {
	return c.Status == StatusPublished
}
