package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookcatalog/internal/database/audit"
	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/logging"
)

// Service provides high-level audit logging for catalog changes.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	if event.RequestID == "" {
		event.RequestID = logging.RequestIDFromContext(ctx)
	}
	return s.repo.LogEvent(ctx, event)
}

// LogBookChange records a change to a single book. Failures are logged, not returned:
// the catalog write already succeeded and must not be reported as failed.
func (s *Service) LogBookChange(ctx context.Context, action entities.AuditAction, book *entities.Book) {
	event := &entities.AuditEvent{
		Action:      action,
		BookID:      book.ID,
		BookTitle:   truncate(book.Title, 200),
		Description: truncate(describe(action, book), 500),
	}

	if err := s.Log(ctx, event); err != nil {
		log.Error().Err(err).
			Str("action", string(action)).
			Uint("book_id", book.ID).
			Msg("Failed to log audit event")
	}
}

// GetEvents retrieves paginated audit events.
func (s *Service) GetEvents(ctx context.Context, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(ctx, limit, offset)
}

// GetBookHistory returns the audit trail of a book, most recent first.
func (s *Service) GetBookHistory(ctx context.Context, bookID uint) ([]entities.AuditEvent, error) {
	return s.repo.GetEventsForBook(ctx, bookID)
}

// DeleteOldEvents removes events older than the specified duration.
func (s *Service) DeleteOldEvents(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(ctx, cutoff)
}

func describe(action entities.AuditAction, book *entities.Book) string {
	switch action {
	case entities.AuditActionCreate:
		return fmt.Sprintf("Created book %q (ISBN %s)", book.Title, book.ISBN)
	case entities.AuditActionUpdate:
		return fmt.Sprintf("Updated book %q", book.Title)
	case entities.AuditActionDelete:
		return fmt.Sprintf("Deleted book %q (ISBN %s)", book.Title, book.ISBN)
	case entities.AuditActionAvailability:
		if book.Available {
			return fmt.Sprintf("Marked %q as available", book.Title)
		}
		return fmt.Sprintf("Marked %q as unavailable", book.Title)
	case entities.AuditActionImport:
		return fmt.Sprintf("Imported book %q (ISBN %s)", book.Title, book.ISBN)
	default:
		return string(action) + ": " + book.Title
	}
}

// truncate shortens s to at most maxLen characters, never splitting a rune.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
