package services

import (
	"context"

	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/entities"
)

// BookReader provides read-only access to the catalog.
// Use this interface when you only need to query books.
type BookReader interface {
	GetBookByID(ctx context.Context, id uint) (*entities.Book, error)
	ListBooks(ctx context.Context, filter books.ListFilter) ([]entities.Book, error)
}

// BookStore is the full record store used by the catalog service.
type BookStore interface {
	BookReader
	CreateBook(ctx context.Context, fields entities.BookFields) (*entities.Book, error)
	UpdateBook(ctx context.Context, id uint, fields entities.BookFields) (*entities.Book, error)
	SetBookAvailability(ctx context.Context, id uint, available bool) (*entities.Book, error)
	DeleteBook(ctx context.Context, id uint) error
}

// AuditRecorder receives one call per successful catalog write.
type AuditRecorder interface {
	LogBookChange(ctx context.Context, action entities.AuditAction, book *entities.Book)
}

// ImportResult contains the outcome of a bulk import.
type ImportResult struct {
	RowsProcessed int
	BooksCreated  int
	RowsFailed    int
	Errors        []RowError
}

// RowError ties an import failure to its line in the source file.
type RowError struct {
	Line int
	Err  error
}
