// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestStatus_MapsEveryKind(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindValidation, http.StatusBadRequest},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindUpstream, http.StatusInternalServerError},
		{Kind("unclassified"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			e := &Error{Kind: tt.kind}
			if got := e.Status(); got != tt.want {
				t.Errorf("Status() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	if e := Validation([]string{"title is required"}); e.Kind != KindValidation || len(e.Details) != 1 {
		t.Errorf("Validation: got %+v", e)
	}
	if e := NotFound("project"); e.Message != "project not found" {
		t.Errorf("NotFound: message = %q", e.Message)
	}
	if e := Unauthorized(""); e.Message != "authentication required" {
		t.Errorf("Unauthorized default: message = %q", e.Message)
	}
	if e := Forbidden(""); e.Message != "insufficient role" {
		t.Errorf("Forbidden default: message = %q", e.Message)
	}
	if e := Conflict("slug already in use"); e.Kind != KindConflict {
		t.Errorf("Conflict: kind = %q", e.Kind)
	}
}

func TestUpstream_WrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	e := Upstream(fmt.Errorf("query admins: %w", cause))

	if e.Message != "internal error" {
		t.Errorf("message = %q, want the opaque internal error", e.Message)
	}
	if !errors.Is(e, cause) {
		t.Error("wrapped cause lost through Upstream")
	}
	if len(e.Details) != 1 || !strings.Contains(e.Details[0], "connection refused") {
		t.Errorf("details = %v, want the cause text", e.Details)
	}
}

func TestFrom(t *testing.T) {
	orig := NotFound("comment")
	if got := From(fmt.Errorf("handler: %w", orig)); got != orig {
		t.Errorf("From should unwrap to the original *Error, got %+v", got)
	}
	if got := From(errors.New("plain failure")); got.Kind != KindUpstream {
		t.Errorf("From plain error: kind = %q, want upstream", got.Kind)
	}
}

func TestWrite_ValidationEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, Validation([]string{"title is required", "at least one goal is required"}))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	var env struct {
		Success   bool     `json:"success"`
		Error     string   `json:"error"`
		Details   []string `json:"details"`
		Timestamp string   `json:"timestamp"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Success {
		t.Error("success = true on an error envelope")
	}
	if env.Error != "validation failed" || len(env.Details) != 2 {
		t.Errorf("envelope = %+v", env)
	}
	if _, err := time.Parse(time.RFC3339, env.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", env.Timestamp, err)
	}
}

func TestWrite_UpstreamCauseOnlyInDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, Upstream(errors.New("pq: relation contents does not exist")))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}

	var env struct {
		Error   string   `json:"error"`
		Details []string `json:"details"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The top-level error stays opaque; the cause appears under details only.
	if env.Error != "internal error" {
		t.Errorf("error = %q, must not leak the cause", env.Error)
	}
	if len(env.Details) != 1 || !strings.Contains(env.Details[0], "relation contents") {
		t.Errorf("details = %v, want the cause text", env.Details)
	}
}

func TestWrite_CoercesPlainErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	Write(rec, errors.New("boom"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}
