// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"amalcms/internal/apierr"
	"amalcms/internal/blocks"
	"amalcms/internal/cache"
	"amalcms/internal/i18n"
	"amalcms/internal/models"
	"amalcms/internal/store"
)

// Public groups the unauthenticated handlers: locale-resolved JSON
// listings, rendered HTML pages, comments, and contact messages.
type Public struct {
	contents     *store.ContentStore
	translations *store.TranslationStore
	comments     *store.CommentStore
	messages     *store.MessageStore
	renderer     *blocks.Renderer
	pages        *cache.PageCache
}

// NewPublic creates the Public handler group.
func NewPublic(
	contents *store.ContentStore,
	translations *store.TranslationStore,
	comments *store.CommentStore,
	messages *store.MessageStore,
	renderer *blocks.Renderer,
	pages *cache.PageCache,
) *Public {
	return &Public{
		contents:     contents,
		translations: translations,
		comments:     comments,
		messages:     messages,
		renderer:     renderer,
		pages:        pages,
	}
}

// publicView is the locale-resolved public shape of a content item.
type publicView struct {
	ID         uuid.UUID     `json:"id"`
	Slug       string        `json:"slug"`
	Categories []string      `json:"categories"`
	Goals      []models.Goal `json:"goals"`
	CoverImage *string       `json:"cover_image,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	i18n.Resolved
}

// localeOf reads ?locale= with a silent fallback to the primary locale.
// Missing translations never fail a public request.
func localeOf(r *http.Request) i18n.Locale {
	loc, _ := i18n.Parse(r.URL.Query().Get("locale"))
	return loc
}

// resolve builds the public view of one item for a locale.
func (h *Public) resolve(c *models.Content, locale i18n.Locale) (publicView, error) {
	rows, err := h.translations.ListForEntity(c.Kind, c.ID)
	if err != nil {
		return publicView{}, err
	}
	return publicView{
		ID:         c.ID,
		Slug:       c.Slug,
		Categories: c.Categories,
		Goals:      c.Goals,
		CoverImage: c.CoverImage,
		CreatedAt:  c.CreatedAt,
		Resolved:   i18n.Resolve(c, i18n.OverlaysFromRows(rows), locale),
	}, nil
}

// listPublished serves the public listing for one kind.
func (h *Public) listPublished(w http.ResponseWriter, r *http.Request, kind models.Kind) {
	locale := localeOf(r)
	items, err := h.contents.ListPublished(kind)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}

	views := make([]publicView, 0, len(items))
	for i := range items {
		v, err := h.resolve(&items[i], locale)
		if err != nil {
			apierr.Write(w, apierr.Upstream(err))
			return
		}
		views = append(views, v)
	}
	respond(w, http.StatusOK, views)
}

// ListProjects serves GET /api/projects.
func (h *Public) ListProjects(w http.ResponseWriter, r *http.Request) {
	h.listPublished(w, r, models.KindProject)
}

// ListBlogPosts serves GET /api/blog-posts.
func (h *Public) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	h.listPublished(w, r, models.KindBlogPost)
}

// getPublished looks an item up by UUID or slug; only published items
// are visible publicly.
func (h *Public) getPublished(w http.ResponseWriter, r *http.Request, kind models.Kind, entity string) {
	ref := chi.URLParam(r, "id")
	locale := localeOf(r)

	var item *models.Content
	var err error
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		item, err = h.contents.FindByID(id)
		if item != nil && item.Kind != kind {
			item = nil
		}
	} else {
		item, err = h.contents.FindBySlug(kind, ref)
	}
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	if item == nil || !item.IsPublished() {
		apierr.Write(w, apierr.NotFound(entity))
		return
	}

	v, err := h.resolve(item, locale)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	respond(w, http.StatusOK, v)
}

// GetProject serves GET /api/projects/{id} (UUID or slug).
func (h *Public) GetProject(w http.ResponseWriter, r *http.Request) {
	h.getPublished(w, r, models.KindProject, "project")
}

// GetBlogPost serves GET /api/blog-posts/{id} (UUID or slug).
func (h *Public) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	h.getPublished(w, r, models.KindBlogPost, "blog post")
}

// ListComments serves GET /api/blog-posts/{id}/comments (approved only).
func (h *Public) ListComments(w http.ResponseWriter, r *http.Request) {
	id, apiErr := uuidParam(r, "id")
	if apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	items, err := h.comments.ListApproved(id)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	respond(w, http.StatusOK, items)
}

type commentRequest struct {
	PostID uuid.UUID `json:"post_id"`
	Author string    `json:"author"`
	Email  *string   `json:"email"`
	Body   string    `json:"body"`
}

// CreateComment serves POST /api/comments. New comments await moderation.
func (h *Public) CreateComment(w http.ResponseWriter, r *http.Request) {
	var req commentRequest
	if apiErr := decode(r, &req); apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	var errs []string
	if strings.TrimSpace(req.Author) == "" {
		errs = append(errs, "author is required")
	}
	if strings.TrimSpace(req.Body) == "" {
		errs = append(errs, "body is required")
	}
	if len(errs) > 0 {
		apierr.Write(w, apierr.Validation(errs))
		return
	}

	post, err := h.contents.FindByID(req.PostID)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	if post == nil || post.Kind != models.KindBlogPost || !post.IsPublished() {
		apierr.Write(w, apierr.NotFound("blog post"))
		return
	}

	created, err := h.comments.Create(req.PostID, req.Author, req.Email, req.Body)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	respond(w, http.StatusCreated, created)
}

type messageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// CreateMessage serves POST /api/messages (contact form).
func (h *Public) CreateMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if apiErr := decode(r, &req); apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	var errs []string
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(req.Email) == "" || !strings.Contains(req.Email, "@") {
		errs = append(errs, "a valid email is required")
	}
	if strings.TrimSpace(req.Body) == "" {
		errs = append(errs, "body is required")
	}
	if len(errs) > 0 {
		apierr.Write(w, apierr.Validation(errs))
		return
	}

	created, err := h.messages.Create(req.Name, req.Email, req.Subject, req.Body)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	respond(w, http.StatusCreated, created)
}

// renderPage serves one locale variant of a published item as HTML,
// reading through the Valkey page cache.
func (h *Public) renderPage(w http.ResponseWriter, r *http.Request, kind models.Kind) {
	locale, ok := i18n.Parse(chi.URLParam(r, "locale"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	slugParam := chi.URLParam(r, "slug")

	key := cache.Key(kind, slugParam, string(locale))
	if html, hit := h.pages.Get(r.Context(), key); hit {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(html)
		return
	}

	item, err := h.contents.FindBySlug(kind, slugParam)
	if err != nil {
		slog.Error("page lookup failed", "kind", kind, "slug", slugParam, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if item == nil || !item.IsPublished() {
		http.NotFound(w, r)
		return
	}

	rows, err := h.translations.ListForEntity(kind, item.ID)
	if err != nil {
		slog.Error("page translations lookup failed", "kind", kind, "slug", slugParam, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	resolved := i18n.Resolve(item, i18n.OverlaysFromRows(rows), locale)

	html, err := h.renderer.RenderPage(string(locale), resolved.Title, resolved.Excerpt, resolved.Blocks)
	if err != nil {
		slog.Error("page render failed", "kind", kind, "slug", slugParam, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.pages.Set(r.Context(), key, html)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// ProjectPage serves GET /{locale}/projects/{slug}.
func (h *Public) ProjectPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, models.KindProject)
}

// BlogPostPage serves GET /{locale}/blog/{slug}.
func (h *Public) BlogPostPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, models.KindBlogPost)
}
