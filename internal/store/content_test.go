// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"amalcms/internal/models"
)

func testProject(slug string) *models.Content {
	return &models.Content{
		Kind:    models.KindProject,
		Slug:    slug,
		Title:   "Test Project",
		Excerpt: "A project used by the store tests.",
		Blocks: []models.Block{
			{ID: "b1", Type: models.BlockText, Content: map[string]any{
				"heading": "Intro", "text": "Hello.",
			}},
			{ID: "b2", Type: models.BlockStats, Content: map[string]any{
				"heading": "Numbers",
				"stats":   []any{map[string]any{"value": "120", "label": "families"}},
			}},
		},
		PeopleHelped: []string{"families", "students"},
		Categories:   []string{"education"},
		Goals: []models.Goal{
			{ID: "g1", Text: "Open the center", Priority: 1},
			{ID: "g2", Text: "Hire two teachers", Priority: 2},
		},
		Status: models.StatusDraft,
	}
}

func TestContentStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)

	slug := "store-test-create"
	t.Cleanup(func() { cleanContents(t, db, slug) })

	created, err := s.Create(testProject(slug))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected generated UUID")
	}
	if len(created.Blocks) != 2 {
		t.Fatalf("blocks: got %d, want 2", len(created.Blocks))
	}
	if created.Blocks[1].Type != models.BlockStats {
		t.Errorf("block order not preserved: got %q", created.Blocks[1].Type)
	}
	if len(created.Goals) != 2 || created.Goals[0].Priority != 1 {
		t.Errorf("goals round-trip: got %+v", created.Goals)
	}

	found, err := s.FindBySlug(models.KindProject, slug)
	if err != nil {
		t.Fatalf("FindBySlug: %v", err)
	}
	if found == nil {
		t.Fatal("expected content, got nil")
	}
	if found.ID != created.ID {
		t.Errorf("ID mismatch: got %s, want %s", found.ID, created.ID)
	}

	// Same slug under the other kind is not found.
	other, err := s.FindBySlug(models.KindBlogPost, slug)
	if err != nil {
		t.Fatalf("FindBySlug (other kind): %v", err)
	}
	if other != nil {
		t.Error("expected nil for same slug under different kind")
	}
}

func TestContentStoreSlugUniquePerKind(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)

	slug := "store-test-unique"
	t.Cleanup(func() { cleanContents(t, db, slug) })

	if _, err := s.Create(testProject(slug)); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	// Duplicate slug within the same kind violates the unique constraint.
	_, err := s.Create(testProject(slug))
	if err == nil {
		t.Fatal("expected error for duplicate slug, got nil")
	}
	if !IsUniqueViolation(err) {
		t.Errorf("expected unique violation, got %v", err)
	}

	// The same slug is fine for a blog post.
	post := testProject(slug)
	post.Kind = models.KindBlogPost
	if _, err := s.Create(post); err != nil {
		t.Errorf("same slug under different kind should succeed: %v", err)
	}
}

func TestContentStoreListByStatus(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)

	draftSlug := "store-test-list-draft"
	pubSlug := "store-test-list-pub"
	t.Cleanup(func() { cleanContents(t, db, draftSlug, pubSlug) })

	s.Create(testProject(draftSlug))
	pub := testProject(pubSlug)
	pub.Status = models.StatusPublished
	s.Create(pub)

	published, err := s.ListPublished(models.KindProject)
	if err != nil {
		t.Fatalf("ListPublished: %v", err)
	}
	for _, c := range published {
		if c.Status != models.StatusPublished {
			t.Errorf("published list contains %q item %q", c.Status, c.Slug)
		}
		if c.Slug == draftSlug {
			t.Error("draft must not appear in published list")
		}
	}

	all, err := s.List(models.KindProject, "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) < 2 {
		t.Errorf("expected at least 2 projects, got %d", len(all))
	}
}

func TestContentStoreUpdate(t *testing.T) {
	db := testDB(t)
	s := NewContentStore(db)

	slug := "store-test-update"
	t.Cleanup(func() { cleanContents(t, db, slug) })

	created, err := s.Create(testProject(slug))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	created.Title = "Updated Title"
	created.Status = models.StatusPublished
	created.Goals = append(created.Goals, models.Goal{ID: "g3", Text: "Expand", Priority: 3})
	if err := s.Update(created); err != nil {
		t.Fatalf("Update: %v", err)
	}

	found, _ := s.FindByID(created.ID)
	if found.Title != "Updated Title" {
		t.Errorf("title: got %q", found.Title)
	}
	if found.Status != models.StatusPublished {
		t.Errorf("status: got %q", found.Status)
	}
	if len(found.Goals) != 3 {
		t.Errorf("goals: got %d, want 3", len(found.Goals))
	}
	if !found.UpdatedAt.After(found.CreatedAt) {
		t.Error("expected updated_at to advance past created_at")
	}
}

func TestContentStoreDeleteCascades(t *testing.T) {
	db := testDB(t)
	cs := NewContentStore(db)
	ts := NewTranslationStore(db)

	slug := "store-test-cascade"
	t.Cleanup(func() { cleanContents(t, db, slug) })

	created, err := cs.Create(testProject(slug))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	title := "English Title"
	if _, err := ts.Upsert(&models.Translation{
		Kind: models.KindProject, EntityID: created.ID, Lang: "en", Title: &title,
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	if err := cs.Delete(created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	rows, err := ts.ListForEntity(models.KindProject, created.ID)
	if err != nil {
		t.Fatalf("ListForEntity: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected translations to cascade, got %d rows", len(rows))
	}
}
