// Package router sets up all HTTP routes and middleware chains for the
// Amal CMS. Routes are organized into public, authenticated, and
// super-admin groups with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"amalcms/internal/handlers"
	"amalcms/internal/middleware"
	"amalcms/internal/store"
	"amalcms/internal/token"
)

// Deps bundles everything the router needs.
type Deps struct {
	Tokens      *token.Store
	Admins      *store.AdminStore
	Auth        *handlers.Auth
	Projects    *handlers.Content
	BlogPosts   *handlers.Content
	ProjectTr   *handlers.Translations
	BlogPostTr  *handlers.Translations
	AdminsGroup *handlers.Admins
	Moderation  *handlers.Moderation
	Media       *handlers.Media
	Public      *handlers.Public
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Public POST endpoints share one sliding-window limiter.
	publicWrites := middleware.NewRateLimiter(10, time.Minute)

	authed := middleware.Authenticate(d.Tokens, d.Admins)

	// Health check — no auth.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Public reads: published content resolved per ?locale=.
		r.Get("/projects", d.Public.ListProjects)
		r.Get("/projects/{id}", d.Public.GetProject)
		r.Get("/blog-posts", d.Public.ListBlogPosts)
		r.Get("/blog-posts/{id}", d.Public.GetBlogPost)
		r.Get("/blog-posts/{id}/comments", d.Public.ListComments)
		r.Get("/blog-posts/{id}/translations", d.BlogPostTr.ListByPath)

		// Public writes — rate limited.
		r.Group(func(r chi.Router) {
			r.Use(publicWrites.Middleware)
			r.Post("/comments", d.Public.CreateComment)
			r.Post("/messages", d.Public.CreateMessage)
			r.Post("/auth/login", d.Auth.Login)

			// Invitation signup: token-gated, not bearer-gated.
			r.Get("/admin-signup", d.AdminsGroup.ValidateSignup)
			r.Post("/admin-signup", d.AdminsGroup.Signup)
		})

		// Authenticated admin API.
		r.Group(func(r chi.Router) {
			r.Use(authed)

			r.Post("/auth/logout", d.Auth.Logout)
			r.Get("/auth/me", d.Auth.Me)
			r.Post("/auth/2fa/setup", d.Auth.TwoFASetup)
			r.Post("/auth/2fa/confirm", d.Auth.TwoFAConfirm)
			r.Post("/auth/2fa/disable", d.Auth.TwoFADisable)

			// Content CRUD. Admin listings include drafts.
			r.Route("/admin/projects", func(r chi.Router) {
				r.Get("/", d.Projects.List)
				r.Get("/{id}", d.Projects.Get)
			})
			r.Route("/admin/blog-posts", func(r chi.Router) {
				r.Get("/", d.BlogPosts.List)
				r.Get("/{id}", d.BlogPosts.Get)
			})
			r.Post("/projects", d.Projects.Create)
			r.Put("/projects/{id}", d.Projects.Update)
			r.Delete("/projects/{id}", d.Projects.Delete)
			r.Post("/blog-posts", d.BlogPosts.Create)
			r.Put("/blog-posts/{id}", d.BlogPosts.Update)
			r.Delete("/blog-posts/{id}", d.BlogPosts.Delete)

			// Translation overlays. The blog post list lives in the
			// public group; writes stay here.
			r.Get("/project-translations", d.ProjectTr.ListByQuery)
			r.Post("/project-translations", d.ProjectTr.UpsertByQuery)
			r.Post("/blog-posts/{id}/translations", d.BlogPostTr.UpsertByPath)

			// Moderation and inbox.
			r.Get("/comments", d.Moderation.PendingComments)
			r.Post("/comments/{id}/approve", d.Moderation.ApproveComment)
			r.Delete("/comments/{id}", d.Moderation.DeleteComment)
			r.Get("/messages", d.Moderation.ListMessages)
			r.Post("/messages/{id}/read", d.Moderation.MarkMessageRead)
			r.Delete("/messages/{id}", d.Moderation.DeleteMessage)

			// Media.
			r.Post("/upload/project-image", d.Media.Upload)
			r.Get("/media", d.Media.List)
			r.Delete("/media/{id}", d.Media.Delete)

			// Account and invitation management — super admin only.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireSuperAdmin)

				r.Get("/admins", d.AdminsGroup.List)
				r.Post("/admins", d.AdminsGroup.Create)
				r.Put("/admins/{id}", d.AdminsGroup.Update)
				r.Delete("/admins/{id}", d.AdminsGroup.Delete)

				r.Get("/invitations", d.AdminsGroup.ListInvitations)
				r.Post("/invitations", d.AdminsGroup.CreateInvitation)
				r.Delete("/invitations/{id}", d.AdminsGroup.RevokeInvitation)
			})
		})
	})

	// Rendered public pages, one per locale.
	r.Get("/{locale}/projects/{slug}", d.Public.ProjectPage)
	r.Get("/{locale}/blog/{slug}", d.Public.BlogPostPage)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
