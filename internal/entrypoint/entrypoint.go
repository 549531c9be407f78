package entrypoint

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookcatalog/internal/audit"
	"github.com/mrlokans/bookcatalog/internal/config"
	"github.com/mrlokans/bookcatalog/internal/database"
	auditrepo "github.com/mrlokans/bookcatalog/internal/database/audit"
	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/forms"
	http_controllers "github.com/mrlokans/bookcatalog/internal/http"
	"github.com/mrlokans/bookcatalog/internal/logging"
	"github.com/mrlokans/bookcatalog/internal/scheduler"
	"github.com/mrlokans/bookcatalog/internal/services"
	"github.com/mrlokans/bookcatalog/internal/session"
	"github.com/mrlokans/bookcatalog/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("listen")
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT. SIGKILL can't be caught.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Dur("timeout", timeout).Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Background work stops first so it does not outlive the database
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown")
	}

	log.Info().Msg("Server exiting")
}

func Run(cfg *config.Config, version string) {
	logging.Init(cfg.Logging.Level, cfg.Logging.Format)
	gin.SetMode(gin.ReleaseMode)

	log.Info().Str("version", version).Msg("Starting Book Catalog")

	db, err := database.Open(cfg.Database.Path, database.Options{LogLevel: cfg.Database.LogLevel})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database")
		}
	}()

	validator, err := forms.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create form validator")
	}

	bookRepo := books.NewRepository(db.DB)
	auditService := audit.NewService(auditrepo.NewRepository(db.DB))
	catalog := services.NewCatalogService(bookRepo, validator, auditService)

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get SQL DB for sessions")
	}
	sessionManager, err := session.NewManager(sqlDB, cfg.Session)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize session manager")
	}

	csrfSecret, err := csrfSecretFrom(cfg.Session.Secret)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to generate CSRF secret")
	}

	// Audit pruning goes through the task queue when enabled, inline otherwise
	var cleanupRunner scheduler.CleanupRunner = scheduler.DirectCleanup{Cleaner: auditService}
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Database.Path, tasks.ConfigFrom(cfg.Tasks))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize task queue")
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Error().Err(err).Msg("Error closing task client")
			}
		}()

		taskClient.Register(tasks.NewCleanupAuditEventsQueue(auditService))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)

		cleanupRunner = taskClient
	}

	cleanupScheduler := scheduler.NewAuditCleanupScheduler(cleanupRunner, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays)
	schedulerCtx, schedulerCancel := context.WithCancel(context.Background())
	if err := cleanupScheduler.Start(schedulerCtx); err != nil {
		log.Error().Err(err).Msg("Failed to start audit cleanup scheduler")
	}

	if cfg.Global.ReadOnly {
		log.Info().Msg("Read-only mode enabled - write operations will be blocked")
	}

	router, err := http_controllers.NewRouter(http_controllers.RouterConfig{
		Catalog:       catalog,
		Decoder:       validator,
		History:       auditService,
		AuditLog:      auditService,
		Database:      db,
		BookCounter:   bookRepo,
		Sessions:      sessionManager,
		CSRFSecret:    csrfSecret,
		SecureCookies: cfg.Session.SecureCookies,
		ReadOnly:      cfg.Global.ReadOnly,
		TemplatesPath: cfg.UI.TemplatesPath,
		Version:       version,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create router")
	}

	onShutdown := func(ctx context.Context) {
		schedulerCancel()
		cleanupScheduler.Stop()
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}

// csrfSecretFrom decodes a configured hex secret, falls back to the raw bytes
// of a non-hex one, and generates a fresh secret when none is set.
func csrfSecretFrom(configured string) ([]byte, error) {
	if configured != "" {
		if secret, err := hex.DecodeString(configured); err == nil {
			return secret, nil
		}
		return []byte(configured), nil
	}

	secret, err := session.GenerateSecret()
	if err != nil {
		return nil, err
	}
	log.Warn().Msg("Generated session secret (set SESSION_SECRET to persist)")
	return hex.DecodeString(secret)
}
