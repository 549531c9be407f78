package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/forms"
)

// CatalogService is the single entry point for changing the catalog.
// It validates candidate fields, persists them and records an audit event
// for every write that succeeds.
type CatalogService struct {
	store     BookStore
	validator *forms.Validator
	audit     AuditRecorder
}

// NewCatalogService creates a catalog service. audit may be nil.
func NewCatalogService(store BookStore, validator *forms.Validator, audit AuditRecorder) *CatalogService {
	return &CatalogService{
		store:     store,
		validator: validator,
		audit:     audit,
	}
}

// CreateBook validates form and inserts a new book.
func (s *CatalogService) CreateBook(ctx context.Context, form *forms.BookForm) (*entities.Book, error) {
	return s.create(ctx, form, entities.AuditActionCreate)
}

// ImportBook is CreateBook for bulk imports; it differs only in the audit action.
func (s *CatalogService) ImportBook(ctx context.Context, form *forms.BookForm) (*entities.Book, error) {
	return s.create(ctx, form, entities.AuditActionImport)
}

func (s *CatalogService) create(ctx context.Context, form *forms.BookForm, action entities.AuditAction) (*entities.Book, error) {
	fields, err := s.validator.Validate(ctx, form)
	if err != nil {
		return nil, err
	}

	book, err := s.store.CreateBook(ctx, fields)
	if err != nil {
		return nil, storeError(err)
	}

	s.record(ctx, action, book)
	return book, nil
}

// UpdateBook re-validates the full field set and replaces the stored record.
func (s *CatalogService) UpdateBook(ctx context.Context, id uint, form *forms.BookForm) (*entities.Book, error) {
	fields, err := s.validator.Validate(ctx, form)
	if err != nil {
		return nil, err
	}

	book, err := s.store.UpdateBook(ctx, id, fields)
	if err != nil {
		return nil, storeError(err)
	}

	s.record(ctx, entities.AuditActionUpdate, book)
	return book, nil
}

// GetBook returns a single book or entities.ErrBookNotFound.
func (s *CatalogService) GetBook(ctx context.Context, id uint) (*entities.Book, error) {
	return s.store.GetBookByID(ctx, id)
}

// ListBooks returns the catalog newest first, narrowed by filter.
func (s *CatalogService) ListBooks(ctx context.Context, filter books.ListFilter) ([]entities.Book, error) {
	return s.store.ListBooks(ctx, filter)
}

// DeleteBook removes a book and returns the record as it was before deletion.
func (s *CatalogService) DeleteBook(ctx context.Context, id uint) (*entities.Book, error) {
	book, err := s.store.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteBook(ctx, id); err != nil {
		return nil, err
	}

	s.record(ctx, entities.AuditActionDelete, book)
	return book, nil
}

// SetAvailability changes only the availability flag of a book.
func (s *CatalogService) SetAvailability(ctx context.Context, id uint, available bool) (*entities.Book, error) {
	book, err := s.store.SetBookAvailability(ctx, id, available)
	if err != nil {
		return nil, err
	}

	s.record(ctx, entities.AuditActionAvailability, book)
	return book, nil
}

func (s *CatalogService) record(ctx context.Context, action entities.AuditAction, book *entities.Book) {
	if s.audit != nil {
		s.audit.LogBookChange(ctx, action, book)
	}
}

// storeError converts an ISBN collision into a field error so forms can show it.
func storeError(err error) error {
	if errors.Is(err, entities.ErrDuplicateISBN) {
		return forms.WrapValidationError(err, "isbn", forms.MsgDuplicateISBN)
	}
	if errors.Is(err, entities.ErrBookNotFound) {
		return err
	}
	return fmt.Errorf("failed to save book: %w", err)
}

// CheckBook runs validation only. Uniqueness is not checked because that is
// decided by the store at write time.
func (s *CatalogService) CheckBook(ctx context.Context, form *forms.BookForm) error {
	_, err := s.validator.Validate(ctx, form)
	return err
}

// Validator exposes the form pipeline so callers can decode submitted values.
func (s *CatalogService) Validator() *forms.Validator {
	return s.validator
}
