package http

import "github.com/mrlokans/bookcatalog/internal/session"

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Catalog Catalog
	Decoder FormDecoder
	History BookHistory

	// AuditLog backs /api/audit. Optional.
	AuditLog AuditLog

	// Health checks
	Database    HealthChecker
	BookCounter BookCounter

	// Sessions back the flash messages. Optional.
	Sessions *session.Manager

	// CSRF protection is installed when the secret is non-empty.
	CSRFSecret    []byte
	SecureCookies bool

	// ReadOnly rejects every write with 403.
	ReadOnly bool

	// TemplatesPath overrides the embedded templates when set.
	TemplatesPath string

	// Application info
	Version string
}
