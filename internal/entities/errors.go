package entities

import "errors"

var (
	// ErrBookNotFound is returned when no book exists with the requested id.
	ErrBookNotFound = errors.New("book not found")

	// ErrDuplicateISBN is returned when a write collides with the unique ISBN index.
	ErrDuplicateISBN = errors.New("book with this ISBN already exists")
)
