// Package books provides database operations for the book catalog.
//
// The Repository is both the record store (create/get/update/delete) and the
// query service (ListBooks with search and filters).
//
// # Usage
//
//	repo := books.NewRepository(db)
//	book, err := repo.GetBookByID(ctx, 123)
//	if errors.Is(err, entities.ErrBookNotFound) { ... }
package books

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookcatalog/internal/database"
	"github.com/mrlokans/bookcatalog/internal/entities"
)

// ListFilter narrows ListBooks. Zero values mean "no restriction".
type ListFilter struct {
	// Query is matched case-insensitively (Unicode aware) as a substring of title, author or ISBN.
	Query     string
	Genre     entities.Genre
	Available *bool
}

// Repository handles all book database operations.
type Repository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db, now: time.Now}
}

// CreateBook inserts a new book. created_at and updated_at are set to the same instant.
func (r *Repository) CreateBook(ctx context.Context, fields entities.BookFields) (*entities.Book, error) {
	now := r.now()
	book := &entities.Book{CreatedAt: now, UpdatedAt: now}
	book.Apply(fields)

	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		return nil, translateError(err)
	}
	return book, nil
}

// GetBookByID retrieves a book by its ID.
func (r *Repository) GetBookByID(ctx context.Context, id uint) (*entities.Book, error) {
	var book entities.Book
	if err := r.db.WithContext(ctx).First(&book, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &book, nil
}

// UpdateBook replaces every editable field of an existing book and refreshes updated_at.
func (r *Repository) UpdateBook(ctx context.Context, id uint, fields entities.BookFields) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&book, id).Error; err != nil {
			return err
		}
		book.Apply(fields)
		if err := tx.Save(&book).Error; err != nil {
			return err
		}
		return tx.First(&book, id).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &book, nil
}

// SetBookAvailability flips only the availability flag.
func (r *Repository) SetBookAvailability(ctx context.Context, id uint, available bool) (*entities.Book, error) {
	var book entities.Book
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&book, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&book).Update("available", available).Error; err != nil {
			return err
		}
		return tx.First(&book, id).Error
	})
	if err != nil {
		return nil, translateError(err)
	}
	return &book, nil
}

// DeleteBook permanently removes a book.
func (r *Repository) DeleteBook(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entities.Book{}, id)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return entities.ErrBookNotFound
	}
	return nil
}

// ListBooks returns books newest first, optionally narrowed by filter.
func (r *Repository) ListBooks(ctx context.Context, filter ListFilter) ([]entities.Book, error) {
	query := r.db.WithContext(ctx).Model(&entities.Book{})

	if q := strings.TrimSpace(filter.Query); q != "" {
		searchPattern := "%" + escapeLike(strings.ToLower(q)) + "%"
		match := database.LowerFunc + "(%s) LIKE ? ESCAPE '\\'"
		query = query.Where(
			fmt.Sprintf(match+" OR "+match+" OR "+match, "title", "author", "isbn"),
			searchPattern, searchPattern, searchPattern,
		)
	}
	if filter.Genre != "" {
		query = query.Where("genre = ?", filter.Genre)
	}
	if filter.Available != nil {
		query = query.Where("available = ?", *filter.Available)
	}

	books := []entities.Book{}
	err := query.Order("created_at DESC").Order("id DESC").Find(&books).Error
	return books, err
}

// CountBooks returns the number of books in the catalog.
func (r *Repository) CountBooks(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.Book{}).Count(&count).Error
	return count, err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func translateError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return entities.ErrBookNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return entities.ErrDuplicateISBN
	default:
		return err
	}
}
