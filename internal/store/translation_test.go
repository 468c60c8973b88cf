// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"amalcms/internal/models"
)

func TestTranslationStoreUpsertReplacesRow(t *testing.T) {
	db := testDB(t)
	cs := NewContentStore(db)
	ts := NewTranslationStore(db)

	slug := "store-test-translation"
	t.Cleanup(func() { cleanContents(t, db, slug) })

	content, err := cs.Create(testProject(slug))
	if err != nil {
		t.Fatalf("Create content: %v", err)
	}

	title := "English Title"
	first, err := ts.Upsert(&models.Translation{
		Kind:     models.KindProject,
		EntityID: content.ID,
		Lang:     "en",
		Title:    &title,
		Content: map[string]any{
			"0": map[string]any{"heading": map[string]any{"en": "Intro EN"}},
		},
	})
	if err != nil {
		t.Fatalf("first Upsert: %v", err)
	}

	// Second save for the same (entity, lang) replaces, not duplicates.
	title2 := "Revised Title"
	second, err := ts.Upsert(&models.Translation{
		Kind:     models.KindProject,
		EntityID: content.ID,
		Lang:     "en",
		Title:    &title2,
	})
	if err != nil {
		t.Fatalf("second Upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected same row, got new ID %s", second.ID)
	}
	if second.Title == nil || *second.Title != "Revised Title" {
		t.Errorf("title not replaced: %v", second.Title)
	}
	if second.Content != nil {
		t.Error("expected content cleared by full replace")
	}

	rows, err := ts.ListForEntity(models.KindProject, content.ID)
	if err != nil {
		t.Fatalf("ListForEntity: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row after upsert, got %d", len(rows))
	}
}

func TestTranslationStoreTwoLangs(t *testing.T) {
	db := testDB(t)
	cs := NewContentStore(db)
	ts := NewTranslationStore(db)

	slug := "store-test-two-langs"
	t.Cleanup(func() { cleanContents(t, db, slug) })

	content, err := cs.Create(testProject(slug))
	if err != nil {
		t.Fatalf("Create content: %v", err)
	}

	en := "English"
	ar := "عربي"
	ts.Upsert(&models.Translation{Kind: models.KindProject, EntityID: content.ID, Lang: "en", Title: &en})
	ts.Upsert(&models.Translation{Kind: models.KindProject, EntityID: content.ID, Lang: "ar", Title: &ar})

	rows, err := ts.ListForEntity(models.KindProject, content.ID)
	if err != nil {
		t.Fatalf("ListForEntity: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	found, err := ts.Find(models.KindProject, content.ID, "ar")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if found == nil || found.Title == nil || *found.Title != "عربي" {
		t.Errorf("arabic overlay round-trip failed: %+v", found)
	}
}

func TestTranslationStoreSparseFields(t *testing.T) {
	db := testDB(t)
	cs := NewContentStore(db)
	ts := NewTranslationStore(db)

	slug := "store-test-sparse"
	t.Cleanup(func() { cleanContents(t, db, slug) })

	content, err := cs.Create(testProject(slug))
	if err != nil {
		t.Fatalf("Create content: %v", err)
	}

	// Only people_helped translated; everything else stays NULL.
	saved, err := ts.Upsert(&models.Translation{
		Kind:         models.KindProject,
		EntityID:     content.ID,
		Lang:         "en",
		PeopleHelped: []string{"families", "students"},
	})
	if err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if saved.Title != nil || saved.Excerpt != nil {
		t.Error("untranslated fields must stay nil")
	}
	if len(saved.PeopleHelped) != 2 {
		t.Errorf("people_helped: got %v", saved.PeopleHelped)
	}
}
