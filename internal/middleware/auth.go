// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"amalcms/internal/apierr"
	"amalcms/internal/store"
	"amalcms/internal/token"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// AuthKey is the context key for the authenticated admin's token data.
	AuthKey contextKey = "auth"

	// TokenKey is the context key for the raw bearer token, kept so
	// handlers (logout, 2FA confirm) can update or revoke it.
	TokenKey contextKey = "auth_token"
)

// BearerToken extracts the bearer token from the Authorization header.
// Returns empty string if the header is absent or malformed.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}

// Authenticate resolves the bearer token against Valkey and re-reads the
// admin's role from the database, so a role change or account deletion
// takes effect on the next request, not at token expiry. Requests without
// a valid token are rejected with a 401 envelope.
func Authenticate(tokens *token.Store, admins *store.AdminStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := BearerToken(r)
			if id == "" {
				apierr.Write(w, apierr.Unauthorized("missing bearer token"))
				return
			}

			data, err := tokens.Get(r.Context(), id)
			if err != nil {
				apierr.Write(w, apierr.Upstream(err))
				return
			}
			if data == nil {
				apierr.Write(w, apierr.Unauthorized("invalid or expired token"))
				return
			}

			admin, err := admins.FindByID(data.AdminID)
			if err != nil {
				apierr.Write(w, apierr.Upstream(err))
				return
			}
			if admin == nil {
				// Account deleted since login; the token is dead weight.
				tokens.Revoke(r.Context(), id)
				apierr.Write(w, apierr.Unauthorized("account no longer exists"))
				return
			}

			if admin.TOTPEnabled && !data.TwoFADone {
				apierr.Write(w, apierr.Unauthorized("two-factor verification required"))
				return
			}

			data.Role = string(admin.Role)
			ctx := context.WithValue(r.Context(), AuthKey, data)
			ctx = context.WithValue(ctx, TokenKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSuperAdmin returns 403 unless the authenticated admin is a
// super admin. Must be applied after Authenticate.
func RequireSuperAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := AuthFromCtx(r.Context())
		if auth == nil || auth.Role != "super_admin" {
			apierr.Write(w, apierr.Forbidden("super admin required"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// AuthFromCtx extracts the authenticated admin's token data from the
// request context. Returns nil for unauthenticated requests.
func AuthFromCtx(ctx context.Context) *token.Data {
	data, _ := ctx.Value(AuthKey).(*token.Data)
	return data
}

// RawTokenFromCtx returns the bearer token the current request
// authenticated with.
func RawTokenFromCtx(ctx context.Context) string {
	id, _ := ctx.Value(TokenKey).(string)
	return id
}
