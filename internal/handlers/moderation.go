// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"amalcms/internal/apierr"
	"amalcms/internal/store"
)

// Moderation groups the admin handlers for comment moderation and the
// contact inbox.
type Moderation struct {
	comments *store.CommentStore
	messages *store.MessageStore
}

// NewModeration creates the Moderation handler group.
func NewModeration(comments *store.CommentStore, messages *store.MessageStore) *Moderation {
	return &Moderation{comments: comments, messages: messages}
}

// PendingComments serves GET /api/comments (unapproved, newest first).
func (h *Moderation) PendingComments(w http.ResponseWriter, r *http.Request) {
	items, err := h.comments.ListPending()
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	respond(w, http.StatusOK, items)
}

// ApproveComment serves POST /api/comments/{id}/approve.
func (h *Moderation) ApproveComment(w http.ResponseWriter, r *http.Request) {
	id, apiErr := uuidParam(r, "id")
	if apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	if err := h.comments.Approve(id); err != nil {
		apierr.Write(w, apierr.NotFound("comment"))
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "approved"})
}

// DeleteComment serves DELETE /api/comments/{id}.
func (h *Moderation) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, apiErr := uuidParam(r, "id")
	if apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	if err := h.comments.Delete(id); err != nil {
		apierr.Write(w, apierr.NotFound("comment"))
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListMessages serves GET /api/messages.
func (h *Moderation) ListMessages(w http.ResponseWriter, r *http.Request) {
	items, err := h.messages.List()
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	respond(w, http.StatusOK, items)
}

// MarkMessageRead serves POST /api/messages/{id}/read.
func (h *Moderation) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	id, apiErr := uuidParam(r, "id")
	if apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	if err := h.messages.MarkRead(id); err != nil {
		apierr.Write(w, apierr.NotFound("message"))
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "read"})
}

// DeleteMessage serves DELETE /api/messages/{id}.
func (h *Moderation) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, apiErr := uuidParam(r, "id")
	if apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	if err := h.messages.Delete(id); err != nil {
		apierr.Write(w, apierr.NotFound("message"))
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}
