// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"amalcms/internal/apierr"
	"amalcms/internal/imaging"
	"amalcms/internal/middleware"
	"amalcms/internal/storage"
	"amalcms/internal/store"
)

// MaxUploadSize caps uploaded image size at 5 MB.
const MaxUploadSize = 5 << 20

// Media groups the upload handlers. Images are converted to WebP before
// hitting object storage; the original bytes are discarded.
type Media struct {
	media   *store.MediaStore
	storage *storage.Client
}

// NewMedia creates the Media handler group. storage may be nil when the
// service runs without S3 credentials; uploads then return an error.
func NewMedia(media *store.MediaStore, storage *storage.Client) *Media {
	return &Media{media: media, storage: storage}
}

// Upload serves POST /api/upload/project-image. Multipart field "file",
// image/* only, 5 MB max.
func (h *Media) Upload(w http.ResponseWriter, r *http.Request) {
	if h.storage == nil {
		apierr.Write(w, apierr.Upstream(errors.New("object storage is not configured")))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		apierr.Write(w, apierr.Validation([]string{"file exceeds the 5 MB upload limit"}))
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		apierr.Write(w, apierr.Validation([]string{"multipart field \"file\" is required"}))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}

	// Sniff the real content type; the client-declared one is advisory.
	if ct := http.DetectContentType(data); !strings.HasPrefix(ct, "image/") {
		apierr.Write(w, apierr.Validation([]string{fmt.Sprintf("only image uploads are accepted (got %s)", ct)}))
		return
	}

	converted, err := imaging.ToWebP(data)
	if err != nil {
		apierr.Write(w, apierr.Validation([]string{"file is not a decodable image"}))
		return
	}

	key := fmt.Sprintf("uploads/%s/%s.webp", time.Now().UTC().Format("2006/01"), uuid.NewString())
	size := int64(len(converted.Data))
	if err := h.storage.Upload(r.Context(), key, converted.ContentType, bytes.NewReader(converted.Data), size); err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}

	auth := middleware.AuthFromCtx(r.Context())
	record, err := h.media.Create(key, h.storage.FileURL(key), converted.ContentType, size, auth.AdminID)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}

	respond(w, http.StatusCreated, record)
}

// List serves GET /api/media.
func (h *Media) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.media.List()
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	respond(w, http.StatusOK, items)
}

// Delete serves DELETE /api/media/{id}, removing both the object and
// its record.
func (h *Media) Delete(w http.ResponseWriter, r *http.Request) {
	id, apiErr := uuidParam(r, "id")
	if apiErr != nil {
		apierr.Write(w, apiErr)
		return
	}

	record, err := h.media.FindByID(id)
	if err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	if record == nil {
		apierr.Write(w, apierr.NotFound("media"))
		return
	}

	if h.storage != nil {
		if err := h.storage.Delete(r.Context(), record.Key); err != nil {
			apierr.Write(w, apierr.Upstream(err))
			return
		}
	}
	if err := h.media.Delete(id); err != nil {
		apierr.Write(w, apierr.Upstream(err))
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "deleted"})
}
