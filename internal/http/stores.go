package http

import (
	"context"
	"net/url"

	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/forms"
	"github.com/mrlokans/bookcatalog/internal/session"
)

// This file consolidates the interfaces HTTP controllers depend on.
// Production wiring passes the concrete services; tests may pass fakes.

// Catalog is the write and read surface of the book catalog.
type Catalog interface {
	CreateBook(ctx context.Context, form *forms.BookForm) (*entities.Book, error)
	UpdateBook(ctx context.Context, id uint, form *forms.BookForm) (*entities.Book, error)
	GetBook(ctx context.Context, id uint) (*entities.Book, error)
	ListBooks(ctx context.Context, filter books.ListFilter) ([]entities.Book, error)
	DeleteBook(ctx context.Context, id uint) (*entities.Book, error)
	SetAvailability(ctx context.Context, id uint, available bool) (*entities.Book, error)
}

// FormDecoder turns submitted values into a BookForm.
type FormDecoder interface {
	Decode(values url.Values) (*forms.BookForm, error)
}

// FlashStore queues one-shot messages across a redirect.
type FlashStore interface {
	AddFlash(ctx context.Context, level session.FlashLevel, message string)
	PopFlashes(ctx context.Context) []session.Flash
}

// BookHistory provides the audit trail shown on the detail page.
type BookHistory interface {
	GetBookHistory(ctx context.Context, bookID uint) ([]entities.AuditEvent, error)
}

// AuditLog pages through the audit trail of every book.
type AuditLog interface {
	GetEvents(ctx context.Context, limit, offset int) ([]entities.AuditEvent, int64, error)
}

// HealthChecker reports whether the database answers.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// BookCounter reports the catalog size for the health endpoint.
type BookCounter interface {
	CountBooks(ctx context.Context) (int64, error)
}
