// Package main is the entry point for the Amal CMS server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"amalcms/internal/blocks"
	"amalcms/internal/cache"
	"amalcms/internal/config"
	"amalcms/internal/database"
	"amalcms/internal/handlers"
	"amalcms/internal/imaging"
	"amalcms/internal/models"
	"amalcms/internal/router"
	"amalcms/internal/storage"
	"amalcms/internal/store"
	"amalcms/internal/token"
)

func main() {
	// Structured logger — outputs text; level is debug so dev logs stay useful.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Load configuration from environment variables.
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Valkey (token store + page cache).
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	tokenStore := token.NewStore(valkeyClient)
	pageCache := cache.NewPageCache(valkeyClient, cache.DefaultPageTTL)

	// Initialize data stores.
	adminStore := store.NewAdminStore(db)
	invitationStore := store.NewInvitationStore(db)
	contentStore := store.NewContentStore(db)
	translationStore := store.NewTranslationStore(db)
	commentStore := store.NewCommentStore(db)
	messageStore := store.NewMessageStore(db)
	mediaStore := store.NewMediaStore(db)

	// Connect to S3-compatible object storage (optional — app works without it).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected", "endpoint", cfg.S3Endpoint, "bucket", cfg.S3Bucket)
	} else {
		slog.Warn("s3 storage not configured — media uploads disabled")
	}

	// libvips worker pool for WebP conversion.
	imaging.Startup(0)
	defer imaging.Shutdown()

	// HTML renderer for the public pages.
	renderer, err := blocks.NewRenderer()
	if err != nil {
		slog.Error("failed to initialize page renderer", "error", err)
		os.Exit(1)
	}

	// Create handler groups with their dependencies.
	authHandlers := handlers.NewAuth(tokenStore, adminStore)
	projectHandlers := handlers.NewContent(models.KindProject, contentStore, translationStore, pageCache)
	blogPostHandlers := handlers.NewContent(models.KindBlogPost, contentStore, translationStore, pageCache)
	projectTranslations := handlers.NewTranslations(models.KindProject, contentStore, translationStore, pageCache)
	blogPostTranslations := handlers.NewTranslations(models.KindBlogPost, contentStore, translationStore, pageCache)
	adminHandlers := handlers.NewAdmins(adminStore, invitationStore)
	moderationHandlers := handlers.NewModeration(commentStore, messageStore)
	mediaHandlers := handlers.NewMedia(mediaStore, storageClient)
	publicHandlers := handlers.NewPublic(contentStore, translationStore, commentStore, messageStore, renderer, pageCache)

	// Set up the Chi router with all middleware and routes.
	r := router.New(router.Deps{
		Tokens:      tokenStore,
		Admins:      adminStore,
		Auth:        authHandlers,
		Projects:    projectHandlers,
		BlogPosts:   blogPostHandlers,
		ProjectTr:   projectTranslations,
		BlogPostTr:  blogPostTranslations,
		AdminsGroup: adminHandlers,
		Moderation:  moderationHandlers,
		Media:       mediaHandlers,
		Public:      publicHandlers,
	})

	// Create the HTTP server with sensible timeouts. WriteTimeout leaves
	// room for image conversion on uploads.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
