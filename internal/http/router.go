package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/logging"
	"github.com/mrlokans/bookcatalog/internal/security"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	router := gin.New()
	router.Use(logging.RequestID())
	router.Use(logging.Logger())
	router.Use(logging.Recovery())

	router.Use(security.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(security.StrictTransportSecurityMiddleware())
	}

	// Read-only runs first so blocked writes get its message, not a CSRF failure
	router.Use(security.NewReadOnly(cfg.ReadOnly).Handler())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(security.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	var flashes FlashStore
	if cfg.Sessions != nil {
		router.Use(cfg.Sessions.LoadAndSave())
		flashes = cfg.Sessions
	}

	tmpl, err := LoadTemplates(cfg.TemplatesPath)
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	router.StaticFS("/static", http.FS(staticFS()))

	health := NewHealthController(cfg.Database, cfg.BookCounter, cfg.Version)
	booksController := NewBooksController(cfg.Catalog, cfg.Decoder, flashes, cfg.History)
	api := NewBooksAPIController(cfg.Catalog)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", Ping)

	// JSON API
	router.GET("/api/books", api.ListBooks)
	router.GET("/api/books/:id", api.GetBook)
	if cfg.AuditLog != nil {
		router.GET("/api/audit", NewAuditController(cfg.AuditLog).GetAuditEvents)
	}

	// UI routes
	router.GET("/", booksController.Index)
	router.GET("/books", booksController.List)
	router.GET("/books/new", booksController.NewForm)
	router.POST("/books/new", booksController.Create)
	router.GET("/books/:id", booksController.Detail)
	router.GET("/books/:id/edit", booksController.EditForm)
	router.POST("/books/:id/edit", booksController.Update)
	router.GET("/books/:id/delete", booksController.ConfirmDelete)
	router.POST("/books/:id/delete", booksController.Delete)
	router.POST("/books/:id/availability", booksController.SetAvailability)

	router.NoRoute(booksController.NotFound)

	return router, nil
}
