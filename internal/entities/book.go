package entities

import (
	"time"
)

// DateLayout is the wire format of Book.PublicationDate.
const DateLayout = "2006-01-02"

type Genre string

const (
	GenreFiction    Genre = "fiction"
	GenreNonFiction Genre = "non_fiction"
	GenreMystery    Genre = "mystery"
	GenreRomance    Genre = "romance"
	GenreSciFi      Genre = "sci_fi"
	GenreBiography  Genre = "biography"
	GenreHistory    Genre = "history"
	GenreOther      Genre = "other"
)

// DefaultGenre is assigned when no genre is submitted.
const DefaultGenre = GenreOther

var genreLabels = map[Genre]string{
	GenreFiction:    "Fiction",
	GenreNonFiction: "Non-Fiction",
	GenreMystery:    "Mystery",
	GenreRomance:    "Romance",
	GenreSciFi:      "Science Fiction",
	GenreBiography:  "Biography",
	GenreHistory:    "History",
	GenreOther:      "Other",
}

// Genres returns every genre in display order.
func Genres() []Genre {
	return []Genre{
		GenreFiction,
		GenreNonFiction,
		GenreMystery,
		GenreRomance,
		GenreSciFi,
		GenreBiography,
		GenreHistory,
		GenreOther,
	}
}

// ParseGenre returns the genre for value, reporting false for anything outside the enumeration.
func ParseGenre(value string) (Genre, bool) {
	g := Genre(value)
	_, ok := genreLabels[g]
	return g, ok
}

func (g Genre) Valid() bool {
	_, ok := genreLabels[g]
	return ok
}

// Label returns the human readable name, or the raw value for unknown genres.
func (g Genre) Label() string {
	if label, ok := genreLabels[g]; ok {
		return label
	}
	return string(g)
}

type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Author          string    `gorm:"size:100;not null" json:"author"`
	ISBN            string    `gorm:"uniqueIndex;size:13;not null" json:"isbn"`
	Genre           Genre     `gorm:"size:20;not null;default:'other'" json:"genre"`
	PublicationDate time.Time `gorm:"not null" json:"publication_date"`
	Pages           int       `gorm:"not null" json:"pages"`
	Available       bool      `gorm:"not null" json:"available"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// BookFields is the validated, typed set of user-editable book fields.
type BookFields struct {
	Title           string
	Author          string
	ISBN            string
	Genre           Genre
	PublicationDate time.Time
	Pages           int
	Available       bool
}

// Apply copies the editable fields onto the book. Identity and timestamps are untouched.
func (b *Book) Apply(f BookFields) {
	b.Title = f.Title
	b.Author = f.Author
	b.ISBN = f.ISBN
	b.Genre = f.Genre
	b.PublicationDate = f.PublicationDate
	b.Pages = f.Pages
	b.Available = f.Available
}

// Fields returns the editable fields of the book.
func (b *Book) Fields() BookFields {
	return BookFields{
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		Genre:           b.Genre,
		PublicationDate: b.PublicationDate,
		Pages:           b.Pages,
		Available:       b.Available,
	}
}

func (b *Book) String() string {
	return b.Title
}
