// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"amalcms/internal/handlers"
	"amalcms/internal/store"
	"amalcms/internal/token"
)

// testRouter wires the route tree with zero-value handler groups. Routes
// that reach a handler would need real backends; these tests only exercise
// the middleware layers in front of them.
func testRouter() http.Handler {
	return New(Deps{
		Tokens:      &token.Store{},
		Admins:      &store.AdminStore{},
		Auth:        &handlers.Auth{},
		Projects:    &handlers.Content{},
		BlogPosts:   &handlers.Content{},
		ProjectTr:   &handlers.Translations{},
		BlogPostTr:  &handlers.Translations{},
		AdminsGroup: &handlers.Admins{},
		Moderation:  &handlers.Moderation{},
		Media:       &handlers.Media{},
		Public:      &handlers.Public{},
	})
}

func TestHealth_Returns200(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("health: got status %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("health: body = %q", rec.Body.String())
	}
}

func TestAdminRoutes_WithoutToken_Return401(t *testing.T) {
	r := testRouter()

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/auth/me"},
		{http.MethodPost, "/api/projects"},
		{http.MethodGet, "/api/admin/projects"},
		{http.MethodGet, "/api/admins"},
		{http.MethodGet, "/api/media"},
	}

	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: got status %d, want %d", p.method, p.path, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestUnknownRoute_Returns404(t *testing.T) {
	r := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown route: got status %d, want %d", rec.Code, http.StatusNotFound)
	}
}
