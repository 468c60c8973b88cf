// Package handlers implements the HTTP handlers for the Amal CMS JSON API
// and the rendered public pages.
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"amalcms/internal/apierr"
)

// envelope is the success half of the API response envelope. The error
// half lives in apierr.
type envelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

// respond writes a success envelope with the given status code.
func respond(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// decode parses a JSON request body into dst. A malformed body is a
// validation failure, not a 500.
func decode(r *http.Request, dst any) *apierr.Error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apierr.Validation([]string{"request body must be valid JSON: " + err.Error()})
	}
	return nil
}

// uuidParam parses a chi URL parameter as a UUID.
func uuidParam(r *http.Request, name string) (uuid.UUID, *apierr.Error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apierr.Validation([]string{name + " must be a valid UUID"})
	}
	return id, nil
}
