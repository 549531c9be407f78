package http

import (
	"html/template"

	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/forms"
	"github.com/mrlokans/bookcatalog/internal/session"
)

// PageView carries what the layout needs on every page.
type PageView struct {
	Title     string
	Flashes   []session.Flash
	CSRFField template.HTML
	ReadOnly  bool
}

// Choice is one option of a select element.
type Choice struct {
	Value    string
	Label    string
	Selected bool
}

type BookListView struct {
	PageView
	Books []entities.Book
	Count int

	// Echo of the submitted filters so the search form keeps its state.
	Query     string
	Genres    []Choice
	Available []Choice
	Filtered  bool
}

type BookDetailView struct {
	PageView
	Book    *entities.Book
	History []entities.AuditEvent
}

type BookFormView struct {
	PageView
	Form   *forms.BookForm
	Errors forms.FieldErrors
	Genres []Choice

	// Book is nil when creating.
	Book   *entities.Book
	Action string
	Submit string
}

type BookDeleteView struct {
	PageView
	Book *entities.Book
}

type ErrorView struct {
	PageView
	Status    int
	Message   string
	RequestID string
}

func genreChoices(selected string) []Choice {
	genres := entities.Genres()
	choices := make([]Choice, 0, len(genres))
	for _, g := range genres {
		choices = append(choices, Choice{
			Value:    string(g),
			Label:    g.Label(),
			Selected: string(g) == selected,
		})
	}
	return choices
}

func availabilityChoices(selected string) []Choice {
	return []Choice{
		{Value: "true", Label: "Available", Selected: selected == "true"},
		{Value: "false", Label: "Unavailable", Selected: selected == "false"},
	}
}
