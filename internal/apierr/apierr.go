// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package apierr defines the API error taxonomy and its JSON envelope.
// Validation and not-found failures carry precise messages; upstream
// failures are surfaced as opaque 500s with the original message under
// details for operator diagnosis only.
package apierr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

// Kind classifies an API failure.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindNotFound     Kind = "not_found"
	KindConflict     Kind = "conflict"
	KindUpstream     Kind = "upstream"
)

// Error is a classified API failure. Details holds per-field validation
// messages or, for upstream failures, the wrapped error text.
type Error struct {
	Kind    Kind
	Message string
	Details []string
	Err     error // wrapped cause, never serialized for non-upstream kinds
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Status maps the error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Validation builds an aggregate validation failure. The messages are the
// ordered, human-readable list produced by the validators.
func Validation(messages []string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Details: messages}
}

// Unauthorized builds a 401 failure.
func Unauthorized(message string) *Error {
	if message == "" {
		message = "authentication required"
	}
	return &Error{Kind: KindUnauthorized, Message: message}
}

// Forbidden builds a 403 failure.
func Forbidden(message string) *Error {
	if message == "" {
		message = "insufficient role"
	}
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound builds a 404 failure for the named entity.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// Conflict builds a 409 failure, distinguished from a generic 500 so the
// UI can offer a specific remedy (e.g. pick another slug).
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// Upstream wraps a backend failure as an opaque 500. The cause's text is
// attached under details; it is diagnostic, not actionable guidance.
func Upstream(err error) *Error {
	e := &Error{Kind: KindUpstream, Message: "internal error", Err: err}
	if err != nil {
		e.Details = []string{err.Error()}
	}
	return e
}

// From coerces any error into an *Error, defaulting to Upstream.
func From(err error) *Error {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Upstream(err)
}

// envelope is the error half of the API response envelope.
type envelope struct {
	Success   bool     `json:"success"`
	Error     string   `json:"error"`
	Details   []string `json:"details,omitempty"`
	Timestamp string   `json:"timestamp"`
}

// Write sends the error as a JSON envelope with its mapped status code.
// Upstream causes are logged here so handlers don't have to.
func Write(w http.ResponseWriter, err error) {
	apiErr := From(err)
	if apiErr.Kind == KindUpstream {
		slog.Error("upstream failure", "error", apiErr.Err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status())
	json.NewEncoder(w).Encode(envelope{
		Success:   false,
		Error:     apiErr.Message,
		Details:   apiErr.Details,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
