package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/bookcatalog/internal/audit"
	"github.com/mrlokans/bookcatalog/internal/database"
	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/forms"
	"github.com/mrlokans/bookcatalog/internal/http"
	"github.com/mrlokans/bookcatalog/internal/scheduler"
	"github.com/mrlokans/bookcatalog/internal/services"
	"github.com/mrlokans/bookcatalog/internal/session"
	"github.com/mrlokans/bookcatalog/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ services.BookReader = (*books.Repository)(nil)
var _ services.BookStore = (*books.Repository)(nil)
var _ http.BookCounter = (*books.Repository)(nil)
var _ http.HealthChecker = (*database.Database)(nil)

// =============================================================================
// Catalog
// =============================================================================

var _ http.Catalog = (*services.CatalogService)(nil)
var _ http.FormDecoder = (*forms.Validator)(nil)
var _ http.FlashStore = (*session.Manager)(nil)

// =============================================================================
// Audit Trail
// =============================================================================

var _ services.AuditRecorder = (*audit.Service)(nil)
var _ http.BookHistory = (*audit.Service)(nil)
var _ http.AuditLog = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ scheduler.AuditEventCleaner = (*audit.Service)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ scheduler.CleanupRunner = (*tasks.Client)(nil)
var _ scheduler.CleanupRunner = scheduler.DirectCleanup{}
