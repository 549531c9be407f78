package forms

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookcatalog/internal/entities"
)

func duneValues() url.Values {
	return url.Values{
		"title":            {"Dune"},
		"author":           {"Frank Herbert"},
		"isbn":             {"9780441013593"},
		"genre":            {"sci_fi"},
		"publication_date": {"1965-08-01"},
		"pages":            {"412"},
		"available":        {"true"},
	}
}

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New()
	require.NoError(t, err)
	return v
}

func validationFields(t *testing.T, err error) FieldErrors {
	t.Helper()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
	return verr.Fields
}

func TestValidator_AcceptsValidBook(t *testing.T) {
	v := newTestValidator(t)

	_, fields, err := v.ValidateValues(context.Background(), duneValues())
	require.NoError(t, err)

	assert.Equal(t, "Dune", fields.Title)
	assert.Equal(t, "Frank Herbert", fields.Author)
	assert.Equal(t, "9780441013593", fields.ISBN)
	assert.Equal(t, entities.GenreSciFi, fields.Genre)
	assert.Equal(t, time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC), fields.PublicationDate)
	assert.Equal(t, 412, fields.Pages)
	assert.True(t, fields.Available)
}

func TestValidator_TrimsWhitespace(t *testing.T) {
	v := newTestValidator(t)
	values := duneValues()
	values.Set("title", "  Dune  ")
	values.Set("isbn", " 9780441013593 ")

	form, fields, err := v.ValidateValues(context.Background(), values)
	require.NoError(t, err)
	assert.Equal(t, "Dune", fields.Title)
	assert.Equal(t, "9780441013593", fields.ISBN)
	assert.Equal(t, "Dune", form.Title, "normalized values are written back to the form")
}

func TestValidator_ISBNLength(t *testing.T) {
	v := newTestValidator(t)

	for _, isbn := range []string{"123", "978044101359", "97804410135930", "978-0441013593"} {
		t.Run(isbn, func(t *testing.T) {
			values := duneValues()
			values.Set("isbn", isbn)

			_, _, err := v.ValidateValues(context.Background(), values)
			fields := validationFields(t, err)
			assert.Equal(t, []string{MsgISBNLength}, fields.Get("isbn"))
		})
	}
}

func TestValidator_ISBNLengthCountsCharacters(t *testing.T) {
	assert.True(t, ValidISBNLength("978044101359é"))
	assert.False(t, ValidISBNLength("97804410135é"))
}

func TestValidator_RequiredFields(t *testing.T) {
	v := newTestValidator(t)

	_, _, err := v.ValidateValues(context.Background(), url.Values{})
	fields := validationFields(t, err)

	for _, name := range []string{"title", "author", "isbn", "publication_date", "pages"} {
		assert.Equal(t, []string{MsgRequired}, fields.Get(name), name)
	}
	assert.False(t, fields.Has("genre"), "genre defaults to other")
	assert.False(t, fields.Has("available"), "available defaults to true")
}

func TestValidator_Defaults(t *testing.T) {
	v := newTestValidator(t)
	values := duneValues()
	values.Del("genre")
	values.Del("available")

	_, fields, err := v.ValidateValues(context.Background(), values)
	require.NoError(t, err)
	assert.Equal(t, entities.GenreOther, fields.Genre)
	assert.True(t, fields.Available)
}

func TestValidator_RejectsUnknownGenre(t *testing.T) {
	v := newTestValidator(t)
	values := duneValues()
	values.Set("genre", "poetry")

	_, _, err := v.ValidateValues(context.Background(), values)
	fields := validationFields(t, err)
	require.Len(t, fields.Get("genre"), 1)
	assert.Contains(t, fields.Get("genre")[0], "poetry is not one of the available choices")
}

func TestValidator_InvalidDateAndPages(t *testing.T) {
	v := newTestValidator(t)
	values := duneValues()
	values.Set("publication_date", "1965-13-45")
	values.Set("pages", "four hundred")

	_, _, err := v.ValidateValues(context.Background(), values)
	fields := validationFields(t, err)
	assert.Equal(t, []string{MsgInvalidDate}, fields.Get("publication_date"))
	assert.Equal(t, []string{MsgWholeNumber}, fields.Get("pages"))
}

func TestValidator_PagesOverflow(t *testing.T) {
	v := newTestValidator(t)
	values := duneValues()
	values.Set("pages", "99999999999999999999999")

	_, _, err := v.ValidateValues(context.Background(), values)
	fields := validationFields(t, err)
	assert.Equal(t, []string{MsgWholeNumber}, fields.Get("pages"))
}

func TestValidator_ZeroPagesAccepted(t *testing.T) {
	v := newTestValidator(t)
	values := duneValues()
	values.Set("pages", "0")

	_, fields, err := v.ValidateValues(context.Background(), values)
	require.NoError(t, err)
	assert.Equal(t, 0, fields.Pages)

	values.Set("pages", "-1")
	_, _, err = v.ValidateValues(context.Background(), values)
	assert.Equal(t, []string{MsgWholeNumber}, validationFields(t, err).Get("pages"))
}

func TestValidator_MaxLength(t *testing.T) {
	v := newTestValidator(t)
	values := duneValues()
	values.Set("title", strings.Repeat("a", 201))

	_, _, err := v.ValidateValues(context.Background(), values)
	fields := validationFields(t, err)
	assert.Equal(t, []string{"Ensure this value has at most 200 characters (it has 201)."}, fields.Get("title"))
}

func TestValidator_Availability(t *testing.T) {
	v := newTestValidator(t)

	cases := map[string]bool{"false": false, "off": false, "0": false, "on": true, "yes": true}
	for raw, want := range cases {
		values := duneValues()
		values.Set("available", raw)
		_, fields, err := v.ValidateValues(context.Background(), values)
		require.NoError(t, err, raw)
		assert.Equal(t, want, fields.Available, raw)
	}

	values := duneValues()
	values.Set("available", "maybe")
	_, _, err := v.ValidateValues(context.Background(), values)
	fields := validationFields(t, err)
	assert.Equal(t, []string{MsgInvalidBool}, fields.Get("available"))
}

func TestValidator_IgnoresUnknownKeys(t *testing.T) {
	v := newTestValidator(t)
	values := duneValues()
	values.Set("gorilla.csrf.Token", "token")

	_, _, err := v.ValidateValues(context.Background(), values)
	assert.NoError(t, err)
}

func TestBookFormFromBook(t *testing.T) {
	book := &entities.Book{
		Title:           "Dune",
		Author:          "Frank Herbert",
		ISBN:            "9780441013593",
		Genre:           entities.GenreSciFi,
		PublicationDate: time.Date(1965, 8, 1, 0, 0, 0, 0, time.UTC),
		Pages:           412,
		Available:       false,
	}

	form := BookFormFromBook(book)
	assert.Equal(t, "1965-08-01", form.PublicationDate)
	assert.Equal(t, "412", form.Pages)
	assert.Equal(t, "false", form.Available)
	assert.False(t, form.IsAvailable())
}

func TestValidationError(t *testing.T) {
	cause := errors.New("boom")
	err := WrapValidationError(cause, "isbn", MsgDuplicateISBN)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "validation failed: isbn: "+MsgDuplicateISBN, err.Error())

	var nilFields FieldErrors
	assert.Nil(t, nilFields.Get("title"))
}
