// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"amalcms/internal/apierr"
	"amalcms/internal/cache"
	"amalcms/internal/i18n"
	"amalcms/internal/models"
	"amalcms/internal/store"
)

// Translations groups the overlay-row handlers for one entity kind.
type Translations struct {
	kind         models.Kind
	entity       string
	contents     *store.ContentStore
	translations *store.TranslationStore
	pages        *cache.PageCache
}

// NewTranslations creates a Translations handler group for the given kind.
func NewTranslations(kind models.Kind, contents *store.ContentStore, translations *store.TranslationStore, pages *cache.PageCache) *Translations {
	entity := "project"
	if kind == models.KindBlogPost {
		entity = "blog post"
	}
	return &Translations{
		kind:         kind,
		entity:       entity,
		contents:     contents,
		translations: translations,
		pages:        pages,
	}
}

// translationsResponse carries the overlay rows plus per-locale
// completeness for the admin UI.
type translationsResponse struct {
	Translations []models.Translation        `json:"translations"`
	Status       map[i18n.Locale]i18n.Status `json:"status"`
}

// listForEntity loads the rows and computes status for one content item.
func (h *Translations) listForEntity(w http.ResponseWriter, entityID uuid.UUID) {
	content, err := h.contents.FindByID(entityID)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	if content == nil || content.Kind != h.kind {
		apierr.Write(w, apierr.NotFound(h.entity))
		return
	}

	rows, err := h.translations.ListForEntity(h.kind, entityID)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}

	respond(w, http.StatusOK, translationsResponse{
		Translations: rows,
		Status:       i18n.TranslationStatus(i18n.OverlaysFromRows(rows)),
	})
}

// ListByQuery serves GET /api/project-translations?project_id=.
func (h *Translations) ListByQuery(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("project_id"))
	if err != nil {
		apierr.Write(w, apierr.Validation([]string{"project_id must be a valid UUID"}))
		return
	}
	h.listForEntity(w, id)
}

// ListByPath serves GET /api/blog-posts/{id}/translations.
func (h *Translations) ListByPath(w http.ResponseWriter, r *http.Request) {
	id, apiErr := uuidParam(r, "id")
	if apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}
	h.listForEntity(w, id)
}

// translationRequest carries the sparse translated fields for one locale.
type translationRequest struct {
	Title        *string        `json:"title"`
	Excerpt      *string        `json:"excerpt"`
	Content      map[string]any `json:"content"`
	PeopleHelped []string       `json:"people_helped"`
}

// upsert writes one overlay row and invalidates the entity's cached pages.
func (h *Translations) upsert(w http.ResponseWriter, r *http.Request, entityID uuid.UUID, lang string) {
	loc, ok := i18n.Parse(lang)
	if !ok || !i18n.Translated(loc) {
		apierr.Write(w, apierr.Validation([]string{"lang must be en or ar"}))
		return
	}

	content, err := h.contents.FindByID(entityID)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	if content == nil || content.Kind != h.kind {
		apierr.Write(w, apierr.NotFound(h.entity))
		return
	}

	var req translationRequest
	if apiErr := decode(r, &req); apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	saved, err := h.translations.Upsert(&models.Translation{
		Kind:         h.kind,
		EntityID:     entityID,
		Lang:         string(loc),
		Title:        req.Title,
		Excerpt:      req.Excerpt,
		Content:      req.Content,
		PeopleHelped: req.PeopleHelped,
	})
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}

	h.pages.Invalidate(r.Context(), h.kind, content.Slug)
	respond(w, http.StatusOK, saved)
}

// UpsertByQuery serves POST /api/project-translations?project_id=&lang=.
func (h *Translations) UpsertByQuery(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("project_id"))
	if err != nil {
		apierr.Write(w, apierr.Validation([]string{"project_id must be a valid UUID"}))
		return
	}
	h.upsert(w, r, id, r.URL.Query().Get("lang"))
}

// UpsertByPath serves POST /api/blog-posts/{id}/translations?lang=.
func (h *Translations) UpsertByPath(w http.ResponseWriter, r *http.Request) {
	id, apiErr := uuidParam(r, "id")
	if apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}
	h.upsert(w, r, id, r.URL.Query().Get("lang"))
}
