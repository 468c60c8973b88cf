// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable.
package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"amalcms/internal/blocks"
	"amalcms/internal/cache"
	"amalcms/internal/database"
	"amalcms/internal/middleware"
	"amalcms/internal/models"
	"amalcms/internal/store"
	"amalcms/internal/token"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "amalcms")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "amalcms")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test token and page cache keys.
		for _, pattern := range []string{"token:*", "page:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB           *sql.DB
	Valkey       *redis.Client
	Tokens       *token.Store
	PageCache    *cache.PageCache
	AdminStore   *store.AdminStore
	Invitations  *store.InvitationStore
	Contents     *store.ContentStore
	Translations *store.TranslationStore
	Comments     *store.CommentStore
	Messages     *store.MessageStore
	Auth         *Auth
	Projects     *Content
	BlogPosts    *Content
	ProjectTr    *Translations
	BlogPostTr   *Translations
	Admins       *Admins
	Moderation   *Moderation
	Public       *Public
}

// newTestEnv creates a complete test environment with all handler dependencies.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	tokens := token.NewStore(vk)
	pageCache := cache.NewPageCache(vk, 1*time.Minute)

	adminStore := store.NewAdminStore(db)
	invitationStore := store.NewInvitationStore(db)
	contentStore := store.NewContentStore(db)
	translationStore := store.NewTranslationStore(db)
	commentStore := store.NewCommentStore(db)
	messageStore := store.NewMessageStore(db)

	renderer, err := blocks.NewRenderer()
	if err != nil {
		t.Fatalf("blocks.NewRenderer: %v", err)
	}

	return &testEnv{
		DB:           db,
		Valkey:       vk,
		Tokens:       tokens,
		PageCache:    pageCache,
		AdminStore:   adminStore,
		Invitations:  invitationStore,
		Contents:     contentStore,
		Translations: translationStore,
		Comments:     commentStore,
		Messages:     messageStore,
		Auth:         NewAuth(tokens, adminStore),
		Projects:     NewContent(models.KindProject, contentStore, translationStore, pageCache),
		BlogPosts:    NewContent(models.KindBlogPost, contentStore, translationStore, pageCache),
		ProjectTr:    NewTranslations(models.KindProject, contentStore, translationStore, pageCache),
		BlogPostTr:   NewTranslations(models.KindBlogPost, contentStore, translationStore, pageCache),
		Admins:       NewAdmins(adminStore, invitationStore),
		Moderation:   NewModeration(commentStore, messageStore),
		Public:       NewPublic(contentStore, translationStore, commentStore, messageStore, renderer, pageCache),
	}
}

// testAdmin creates an admin account and schedules its removal.
func testAdmin(t *testing.T, env *testEnv, email string, role models.Role) *models.Admin {
	t.Helper()

	admin, err := env.AdminStore.Create(email, "password123", "Test Admin", role)
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	t.Cleanup(func() {
		env.DB.Exec("DELETE FROM admins WHERE email = $1", email)
	})
	return admin
}

// authData builds the context payload Authenticate would have set.
func authData(admin *models.Admin) *token.Data {
	return &token.Data{
		AdminID:   admin.ID,
		Email:     admin.Email,
		Name:      admin.Name,
		Role:      string(admin.Role),
		TwoFADone: false,
	}
}

// ctxWithAuth adds authenticated admin data to a context.
func ctxWithAuth(ctx context.Context, data *token.Data) context.Context {
	return context.WithValue(ctx, middleware.AuthKey, data)
}

// withChiURLParam adds chi URL parameters (key, value pairs) to a request.
func withChiURLParam(r *http.Request, pairs ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(pairs); i += 2 {
		rctx.URLParams.Add(pairs[i], pairs[i+1])
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// cleanContents removes test content rows by slug.
func cleanContents(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, s := range slugs {
		db.Exec("DELETE FROM contents WHERE slug = $1", s)
	}
}

// successEnvelope mirrors the success half of the response envelope.
type successEnvelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

// errorEnvelope mirrors the error half of the response envelope.
type errorEnvelope struct {
	Success   bool     `json:"success"`
	Error     string   `json:"error"`
	Details   []string `json:"details"`
	Timestamp string   `json:"timestamp"`
}

// decodeSuccess asserts a success envelope and unmarshals its data into dst.
func decodeSuccess(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()

	var env successEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body: %s)", err, rec.Body.String())
	}
	if !env.Success {
		t.Fatalf("envelope success = false, body: %s", rec.Body.String())
	}
	if dst != nil {
		if err := json.Unmarshal(env.Data, dst); err != nil {
			t.Fatalf("decode data: %v (data: %s)", err, env.Data)
		}
	}
}

// decodeError asserts an error envelope and returns it.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()

	var env errorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode error envelope: %v (body: %s)", err, rec.Body.String())
	}
	if env.Success {
		t.Fatalf("error envelope success = true, body: %s", rec.Body.String())
	}
	return env
}

// uniqueSlug builds a collision-free slug for a test fixture.
func uniqueSlug(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// jsonBody marshals v into a request body reader.
func jsonBody(t *testing.T, v any) *strings.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	return strings.NewReader(string(b))
}
