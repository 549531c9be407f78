// Package forms is the validation layer between submitted form values and the record store.
//
// A submission goes through three steps, mirroring how the binder in the
// server works for JSON payloads:
//
//  1. Decode: url.Values are decoded into a BookForm with gorilla/schema.
//  2. Conform: mold trims whitespace and fills defaults (genre=other).
//  3. Validate: validator checks the struct tags and the custom rules
//     registered in New (isbn_length, genre, availability).
//
// The result is either typed entities.BookFields or a *ValidationError
// holding per-field messages ready for re-rendering the form.
package forms

import (
	"strconv"
	"strings"

	"github.com/mrlokans/bookcatalog/internal/entities"
)

// ISBNLength is the exact number of characters an ISBN must have.
const ISBNLength = 13

// BookForm holds raw submitted values. Every field is a string so the form
// can be re-rendered exactly as the user typed it.
type BookForm struct {
	Title           string `form:"title" mod:"trim" validate:"required,max=200"`
	Author          string `form:"author" mod:"trim" validate:"required,max=100"`
	ISBN            string `form:"isbn" mod:"trim" validate:"required,isbn_length"`
	Genre           string `form:"genre" mod:"trim,default=other" validate:"required,genre"`
	PublicationDate string `form:"publication_date" mod:"trim" validate:"required,datetime=2006-01-02"`
	Pages           string `form:"pages" mod:"trim" validate:"required,number"`
	Available       string `form:"available" mod:"trim" validate:"availability"`
}

// NewBookForm returns the initial values of an empty create form.
func NewBookForm() *BookForm {
	return &BookForm{
		Genre:     string(entities.DefaultGenre),
		Available: "true",
	}
}

// BookFormFromBook pre-populates a form with an existing record.
func BookFormFromBook(book *entities.Book) *BookForm {
	return &BookForm{
		Title:           book.Title,
		Author:          book.Author,
		ISBN:            book.ISBN,
		Genre:           string(book.Genre),
		PublicationDate: book.PublicationDate.Format(entities.DateLayout),
		Pages:           strconv.Itoa(book.Pages),
		Available:       strconv.FormatBool(book.Available),
	}
}

// IsAvailable reports the availability the form currently selects.
// Unparseable values read as available so the select keeps its default.
func (f *BookForm) IsAvailable() bool {
	available, ok := ParseAvailability(f.Available)
	return !ok || available
}

// ValidISBNLength reports whether isbn has exactly ISBNLength characters.
func ValidISBNLength(isbn string) bool {
	return len([]rune(isbn)) == ISBNLength
}

// ParseAvailability interprets a submitted availability value.
// An empty value means the field was omitted and defaults to available.
func ParseAvailability(value string) (available bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "true", "on", "1", "yes":
		return true, true
	case "false", "off", "0", "no":
		return false, true
	default:
		return false, false
	}
}
