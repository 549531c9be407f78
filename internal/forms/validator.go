package forms

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/mold/v4"
	"github.com/go-playground/mold/v4/modifiers"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"

	"github.com/mrlokans/bookcatalog/internal/entities"
)

// Error messages shown next to the offending form field.
const (
	MsgRequired      = "This field is required."
	MsgISBNLength    = "ISBN must be exactly 13 digits."
	MsgInvalidDate   = "Enter a valid date."
	MsgWholeNumber   = "Enter a whole number."
	MsgInvalidBool   = "Enter a valid boolean."
	MsgDuplicateISBN = "Book with this ISBN already exists."
)

// Validator decodes, normalizes and validates book submissions.
type Validator struct {
	decoder  *schema.Decoder
	conform  *mold.Transformer
	validate *validator.Validate
}

// New initializes a Validator with the book validation rules registered.
func New() (*Validator, error) {
	decoder := schema.NewDecoder()
	decoder.SetAliasTag("form")
	// The CSRF middleware posts its own token field alongside the book fields.
	decoder.IgnoreUnknownKeys(true)

	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	rules := map[string]validator.Func{
		"isbn_length":  isbnLengthRule,
		"genre":        genreRule,
		"availability": availabilityRule,
	}
	for tag, fn := range rules {
		if err := validate.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("register %s validation: %w", tag, err)
		}
	}

	return &Validator{
		decoder:  decoder,
		conform:  modifiers.New(),
		validate: validate,
	}, nil
}

// Decode reads a BookForm from submitted form values.
func (v *Validator) Decode(values url.Values) (*BookForm, error) {
	form := &BookForm{}
	if err := v.decoder.Decode(form, values); err != nil {
		return nil, fmt.Errorf("decode book form: %w", err)
	}
	return form, nil
}

// Validate normalizes form in place and converts it into typed fields.
// Rejections are returned as *ValidationError; any other error is unexpected.
func (v *Validator) Validate(ctx context.Context, form *BookForm) (entities.BookFields, error) {
	if err := v.conform.Struct(ctx, form); err != nil {
		return entities.BookFields{}, fmt.Errorf("normalize book form: %w", err)
	}

	fieldErrors := FieldErrors{}
	if err := v.validate.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return entities.BookFields{}, fmt.Errorf("validate book form: %w", err)
		}
		for _, fe := range verrs {
			fieldErrors.Add(fe.Field(), message(fe))
		}
	}

	fields := entities.BookFields{
		Title:  form.Title,
		Author: form.Author,
		ISBN:   form.ISBN,
		Genre:  entities.Genre(form.Genre),
	}

	if !fieldErrors.Has("publication_date") {
		date, err := time.Parse(entities.DateLayout, form.PublicationDate)
		if err != nil {
			fieldErrors.Add("publication_date", MsgInvalidDate)
		}
		fields.PublicationDate = date
	}

	if !fieldErrors.Has("pages") {
		pages, err := strconv.Atoi(form.Pages)
		if err != nil {
			fieldErrors.Add("pages", MsgWholeNumber)
		}
		fields.Pages = pages
	}

	fields.Available, _ = ParseAvailability(form.Available)

	if len(fieldErrors) > 0 {
		return entities.BookFields{}, NewValidationError(fieldErrors)
	}
	return fields, nil
}

// ValidateValues is Decode followed by Validate. The decoded form is returned
// even on validation failure so it can be re-rendered.
func (v *Validator) ValidateValues(ctx context.Context, values url.Values) (*BookForm, entities.BookFields, error) {
	form, err := v.Decode(values)
	if err != nil {
		return nil, entities.BookFields{}, err
	}
	fields, err := v.Validate(ctx, form)
	return form, fields, err
}

func isbnLengthRule(fl validator.FieldLevel) bool {
	return ValidISBNLength(fl.Field().String())
}

func genreRule(fl validator.FieldLevel) bool {
	_, ok := entities.ParseGenre(fl.Field().String())
	return ok
}

func availabilityRule(fl validator.FieldLevel) bool {
	_, ok := ParseAvailability(fl.Field().String())
	return ok
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return MsgRequired
	case "isbn_length":
		return MsgISBNLength
	case "genre":
		return fmt.Sprintf("Select a valid choice. %v is not one of the available choices.", fe.Value())
	case "datetime":
		return MsgInvalidDate
	case "number":
		return MsgWholeNumber
	case "availability":
		return MsgInvalidBool
	case "max":
		value, _ := fe.Value().(string)
		return fmt.Sprintf("Ensure this value has at most %s characters (it has %d).", fe.Param(), utf8.RuneCountInString(value))
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}
