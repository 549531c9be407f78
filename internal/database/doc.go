// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup and auto-migration
//	├── books/           # Book CRUD and listing/search
//	└── audit/           # Audit event persistence and pruning
//
// # Using Sub-packages
//
// Each sub-package provides a Repository built on the shared *gorm.DB:
//
//	db, err := database.NewDatabase("./book-catalog.db")
//
//	booksRepo := books.NewRepository(db.DB)
//	auditRepo := audit.NewRepository(db.DB)
//
//	book, err := booksRepo.GetBookByID(ctx, 42)
//
// # Errors
//
// The connection is opened with gorm's TranslateError enabled, so unique
// index violations surface as gorm.ErrDuplicatedKey. Repositories convert
// store errors into the sentinels in internal/entities
// (ErrBookNotFound, ErrDuplicateISBN) before returning them.
//
// # Adding a New Domain
//
//  1. Create a new sub-package: internal/database/<domain>/
//  2. Define a Repository struct with a *gorm.DB field
//  3. Add NewRepository(db *gorm.DB) constructor
//  4. Register the entity in Open's AutoMigrate call
//  5. Add a compile-time interface check in internal/interfaces
package database
