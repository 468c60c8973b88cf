// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"amalcms/internal/apierr"
	"amalcms/internal/blocks"
	"amalcms/internal/cache"
	"amalcms/internal/goals"
	"amalcms/internal/models"
	"amalcms/internal/slug"
	"amalcms/internal/store"
)

// Content groups the admin CRUD handlers for one entity kind. Projects
// and blog posts share the same shape, so the group is instantiated once
// per kind in the router.
type Content struct {
	kind         models.Kind
	entity       string // "project" or "blog post", for error messages
	contents     *store.ContentStore
	translations *store.TranslationStore
	pages        *cache.PageCache
}

// NewContent creates a Content handler group for the given kind.
func NewContent(kind models.Kind, contents *store.ContentStore, translations *store.TranslationStore, pages *cache.PageCache) *Content {
	entity := "project"
	if kind == models.KindBlogPost {
		entity = "blog post"
	}
	return &Content{
		kind:         kind,
		entity:       entity,
		contents:     contents,
		translations: translations,
		pages:        pages,
	}
}

// contentRequest carries the writable fields of a project or blog post.
// Description is accepted as an alias for excerpt.
type contentRequest struct {
	Title        string         `json:"title"`
	Excerpt      string         `json:"excerpt"`
	Description  string         `json:"description"`
	Slug         string         `json:"slug"`
	Blocks       []models.Block `json:"content"`
	PeopleHelped []string       `json:"people_helped"`
	Categories   []string       `json:"categories"`
	Goals        []models.Goal  `json:"goals"`
	Status       models.Status  `json:"status"`
	CoverImage   *string        `json:"cover_image"`
}

// List returns all items of the group's kind. ?status= filters by state.
func (h *Content) List(w http.ResponseWriter, r *http.Request) {
	status := models.Status(r.URL.Query().Get("status"))
	if status != "" && !models.ValidStatus(status) {
		apierr.Write(w, apierr.Validation([]string{"status must be one of draft, published, archived"}))
		return
	}

	items, err := h.contents.List(h.kind, status)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	respond(w, http.StatusOK, items)
}

// Get returns one item by ID.
func (h *Content) Get(w http.ResponseWriter, r *http.Request) {
	id, apiErr := uuidParam(r, "id")
	if apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	item, err := h.contents.FindByID(id)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	if item == nil || item.Kind != h.kind {
		apierr.Write(w, apierr.NotFound(h.entity))
		return
	}
	respond(w, http.StatusOK, item)
}

// Create validates and inserts a new item. A missing slug is generated
// from the title, de-duplicated against existing slugs of the same kind.
func (h *Content) Create(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if apiErr := decode(r, &req); apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	if req.Slug == "" {
		existing, err := h.contents.Slugs(h.kind)
		if err != nil {
			apierr.Write(w, apierr.Upstream(err))
			return
		}
		req.Slug = slug.Unique(req.Title, existing)
	}
	if req.Status == "" {
		req.Status = models.StatusDraft
	}
	req.Goals = goals.Renumber(req.Goals)

	if errs := h.validate(&req); len(errs) > 0 {
		apierr.Write(w, apierr.Validation(errs))
		return
	}

	created, err := h.contents.Create(&models.Content{
		Kind:         h.kind,
		Slug:         req.Slug,
		Title:        req.Title,
		Excerpt:      excerptOf(&req),
		Blocks:       req.Blocks,
		PeopleHelped: req.PeopleHelped,
		Categories:   req.Categories,
		Goals:        req.Goals,
		Status:       req.Status,
		CoverImage:   req.CoverImage,
	})
	if err != nil {
		if store.IsUniqueViolation(err) {
			apierr.Write(w, apierr.Conflict("slug already in use"))
			return
		}
		apierr.Write(w, apierr.Upstream(err))
		return
	}

	respond(w, http.StatusCreated, created)
}

// Update validates and replaces an existing item, then drops every cached
// locale variant of it.
func (h *Content) Update(w http.ResponseWriter, r *http.Request) {
	id, apiErr := uuidParam(r, "id")
	if apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	existing, err := h.contents.FindByID(id)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	if existing == nil || existing.Kind != h.kind {
		apierr.Write(w, apierr.NotFound(h.entity))
		return
	}

	var req contentRequest
	if apiErr := decode(r, &req); apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	if req.Slug == "" {
		req.Slug = existing.Slug
	}
	if req.Status == "" {
		req.Status = existing.Status
	}
	req.Goals = goals.Renumber(req.Goals)

	if errs := h.validate(&req); len(errs) > 0 {
		apierr.Write(w, apierr.Validation(errs))
		return
	}

	oldSlug := existing.Slug
	existing.Slug = req.Slug
	existing.Title = req.Title
	existing.Excerpt = excerptOf(&req)
	existing.Blocks = req.Blocks
	existing.PeopleHelped = req.PeopleHelped
	existing.Categories = req.Categories
	existing.Goals = req.Goals
	existing.Status = req.Status
	existing.CoverImage = req.CoverImage

	if err := h.contents.Update(existing); err != nil {
		if store.IsUniqueViolation(err) {
			apierr.Write(w, apierr.Conflict("slug already in use"))
			return
		}
		apierr.Write(w, apierr.Upstream(err))
		return
	}

	h.pages.Invalidate(r.Context(), h.kind, oldSlug)
	if existing.Slug != oldSlug {
		h.pages.Invalidate(r.Context(), h.kind, existing.Slug)
	}

	respond(w, http.StatusOK, existing)
}

// Delete removes an item. Translations and comments cascade in the schema.
func (h *Content) Delete(w http.ResponseWriter, r *http.Request) {
	id, apiErr := uuidParam(r, "id")
	if apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	existing, err := h.contents.FindByID(id)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	if existing == nil || existing.Kind != h.kind {
		apierr.Write(w, apierr.NotFound(h.entity))
		return
	}

	if err := h.contents.Delete(id); err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}

	h.pages.Invalidate(r.Context(), h.kind, existing.Slug)
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Content) validate(req *contentRequest) []string {
	return blocks.ValidateEntity(blocks.EntityInput{
		Title:       req.Title,
		Excerpt:     req.Excerpt,
		Description: req.Description,
		Slug:        req.Slug,
		Categories:  req.Categories,
		Goals:       req.Goals,
		Status:      req.Status,
		Blocks:      req.Blocks,
	})
}

func excerptOf(req *contentRequest) string {
	if req.Excerpt != "" {
		return req.Excerpt
	}
	return req.Description
}
