package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/forms"
	"github.com/mrlokans/bookcatalog/internal/logging"
	"github.com/mrlokans/bookcatalog/internal/security"
	"github.com/mrlokans/bookcatalog/internal/session"
)

const (
	templateList          = "book_list"
	templateDetail        = "book_detail"
	templateForm          = "book_form"
	templateConfirmDelete = "book_confirm_delete"
	templateNotFound      = "not_found"
	templateError         = "error"
)

// BooksController serves the HTML pages of the catalog. It holds no state of
// its own: records live in the catalog and messages in the session.
type BooksController struct {
	catalog Catalog
	decoder FormDecoder
	flashes FlashStore
	history BookHistory
}

// NewBooksController creates the controller. flashes and history may be nil.
func NewBooksController(catalog Catalog, decoder FormDecoder, flashes FlashStore, history BookHistory) *BooksController {
	return &BooksController{
		catalog: catalog,
		decoder: decoder,
		flashes: flashes,
		history: history,
	}
}

// Index redirects the site root to the list.
func (ctl *BooksController) Index(c *gin.Context) {
	c.Redirect(http.StatusFound, "/books")
}

// List renders all books, optionally narrowed by ?q=, ?genre= and ?available=.
func (ctl *BooksController) List(c *gin.Context) {
	query := c.Query("q")
	genre := c.Query("genre")
	available := c.Query("available")

	filter := listFilter(query, genre, available)
	result, err := ctl.catalog.ListBooks(c.Request.Context(), filter)
	if err != nil {
		ctl.renderError(c, err, "list books")
		return
	}

	view := BookListView{
		PageView:  ctl.page(c, "Books"),
		Books:     result,
		Count:     len(result),
		Query:     query,
		Genres:    genreChoices(string(filter.Genre)),
		Available: availabilityChoices(availabilityValue(filter.Available)),
		Filtered:  filter.Query != "" || filter.Genre != "" || filter.Available != nil,
	}
	c.HTML(http.StatusOK, templateList, view)
}

// Detail renders a single book.
func (ctl *BooksController) Detail(c *gin.Context) {
	book, ok := ctl.loadBook(c)
	if !ok {
		return
	}

	view := BookDetailView{
		PageView: ctl.page(c, book.Title),
		Book:     book,
	}
	if ctl.history != nil {
		history, err := ctl.history.GetBookHistory(c.Request.Context(), book.ID)
		if err != nil {
			log.Warn().Err(err).Uint("book_id", book.ID).Msg("Failed to load book history")
		}
		view.History = history
	}
	c.HTML(http.StatusOK, templateDetail, view)
}

// NewForm renders an empty create form.
func (ctl *BooksController) NewForm(c *gin.Context) {
	ctl.renderForm(c, http.StatusOK, forms.NewBookForm(), nil, nil)
}

// Create validates the submitted form and persists a new book.
func (ctl *BooksController) Create(c *gin.Context) {
	form, ok := ctl.decodeForm(c)
	if !ok {
		return
	}

	book, err := ctl.catalog.CreateBook(c.Request.Context(), form)
	if ctl.handleWriteError(c, err, form, nil, "create book") {
		return
	}

	ctl.flash(c, session.FlashSuccess, fmt.Sprintf("Book %q created successfully!", book.Title))
	c.Redirect(http.StatusFound, bookURL(book.ID))
}

// EditForm renders the update form pre-populated from the stored record.
func (ctl *BooksController) EditForm(c *gin.Context) {
	book, ok := ctl.loadBook(c)
	if !ok {
		return
	}
	ctl.renderForm(c, http.StatusOK, forms.BookFormFromBook(book), nil, book)
}

// Update re-validates the full field set and replaces the stored record.
func (ctl *BooksController) Update(c *gin.Context) {
	book, ok := ctl.loadBook(c)
	if !ok {
		return
	}

	form, ok := ctl.decodeForm(c)
	if !ok {
		return
	}

	updated, err := ctl.catalog.UpdateBook(c.Request.Context(), book.ID, form)
	if ctl.handleWriteError(c, err, form, book, "update book") {
		return
	}

	ctl.flash(c, session.FlashSuccess, fmt.Sprintf("Book %q updated successfully!", updated.Title))
	c.Redirect(http.StatusFound, bookURL(updated.ID))
}

// ConfirmDelete renders the delete confirmation page.
func (ctl *BooksController) ConfirmDelete(c *gin.Context) {
	book, ok := ctl.loadBook(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, templateConfirmDelete, BookDeleteView{
		PageView: ctl.page(c, "Delete "+book.Title),
		Book:     book,
	})
}

// Delete removes the book and returns to the list.
func (ctl *BooksController) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		ctl.renderNotFound(c)
		return
	}

	book, err := ctl.catalog.DeleteBook(c.Request.Context(), id)
	if errors.Is(err, entities.ErrBookNotFound) {
		ctl.renderNotFound(c)
		return
	}
	if err != nil {
		ctl.renderError(c, err, "delete book")
		return
	}

	ctl.flash(c, session.FlashSuccess, fmt.Sprintf("Book %q deleted successfully!", book.Title))
	c.Redirect(http.StatusFound, "/books")
}

// SetAvailability changes only the availability flag from the detail page.
func (ctl *BooksController) SetAvailability(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		ctl.renderNotFound(c)
		return
	}

	value := strings.TrimSpace(c.PostForm("available"))
	available, valid := forms.ParseAvailability(value)
	if value == "" || !valid {
		ctl.renderStatus(c, http.StatusBadRequest, forms.MsgInvalidBool)
		return
	}

	book, err := ctl.catalog.SetAvailability(c.Request.Context(), id, available)
	if errors.Is(err, entities.ErrBookNotFound) {
		ctl.renderNotFound(c)
		return
	}
	if err != nil {
		ctl.renderError(c, err, "set availability")
		return
	}

	state := "unavailable"
	if book.Available {
		state = "available"
	}
	ctl.flash(c, session.FlashSuccess, fmt.Sprintf("Book %q marked as %s.", book.Title, state))
	c.Redirect(http.StatusFound, bookURL(book.ID))
}

// NotFound answers unknown routes with the HTML 404 page.
func (ctl *BooksController) NotFound(c *gin.Context) {
	ctl.renderNotFound(c)
}

// --- helpers ---

func (ctl *BooksController) page(c *gin.Context, title string) PageView {
	view := PageView{
		Title:     title,
		CSRFField: security.CSRFTokenField(c),
		ReadOnly:  security.IsReadOnly(c),
	}
	if ctl.flashes != nil {
		view.Flashes = ctl.flashes.PopFlashes(c.Request.Context())
	}
	return view
}

func (ctl *BooksController) flash(c *gin.Context, level session.FlashLevel, message string) {
	if ctl.flashes != nil {
		ctl.flashes.AddFlash(c.Request.Context(), level, message)
	}
}

// loadBook resolves the :id parameter, rendering the 404 page when it does not name a book.
func (ctl *BooksController) loadBook(c *gin.Context) (*entities.Book, bool) {
	id, ok := parseID(c, "id")
	if !ok {
		ctl.renderNotFound(c)
		return nil, false
	}

	book, err := ctl.catalog.GetBook(c.Request.Context(), id)
	if errors.Is(err, entities.ErrBookNotFound) {
		ctl.renderNotFound(c)
		return nil, false
	}
	if err != nil {
		ctl.renderError(c, err, "get book")
		return nil, false
	}
	return book, true
}

func (ctl *BooksController) decodeForm(c *gin.Context) (*forms.BookForm, bool) {
	if err := c.Request.ParseForm(); err != nil {
		ctl.renderStatus(c, http.StatusBadRequest, "The submitted form could not be read.")
		return nil, false
	}

	form, err := ctl.decoder.Decode(c.Request.PostForm)
	if err != nil {
		ctl.renderStatus(c, http.StatusBadRequest, "The submitted form could not be read.")
		return nil, false
	}
	return form, true
}

// handleWriteError renders the outcome of a failed create or update and
// reports whether the request has been answered.
func (ctl *BooksController) handleWriteError(c *gin.Context, err error, form *forms.BookForm, book *entities.Book, context string) bool {
	if err == nil {
		return false
	}

	var verr *forms.ValidationError
	switch {
	case errors.As(err, &verr):
		ctl.renderForm(c, http.StatusOK, form, verr.Fields, book)
	case errors.Is(err, entities.ErrBookNotFound):
		ctl.renderNotFound(c)
	default:
		ctl.renderError(c, err, context)
	}
	return true
}

func (ctl *BooksController) renderForm(c *gin.Context, status int, form *forms.BookForm, errs forms.FieldErrors, book *entities.Book) {
	view := BookFormView{
		Form:   form,
		Errors: errs,
		Genres: genreChoices(form.Genre),
		Book:   book,
	}
	if book == nil {
		view.PageView = ctl.page(c, "Add book")
		view.Action = "/books/new"
		view.Submit = "Create"
	} else {
		view.PageView = ctl.page(c, "Edit "+book.Title)
		view.Action = bookURL(book.ID) + "/edit"
		view.Submit = "Save"
	}
	c.HTML(status, templateForm, view)
}

func (ctl *BooksController) renderNotFound(c *gin.Context) {
	c.HTML(http.StatusNotFound, templateNotFound, ctl.page(c, "Not found"))
}

func (ctl *BooksController) renderStatus(c *gin.Context, status int, message string) {
	c.HTML(status, templateError, ErrorView{
		PageView:  ctl.page(c, http.StatusText(status)),
		Status:    status,
		Message:   message,
		RequestID: logging.RequestIDFromContext(c.Request.Context()),
	})
}

func (ctl *BooksController) renderError(c *gin.Context, err error, context string) {
	logError(c, err, context)
	ctl.renderStatus(c, http.StatusInternalServerError, "Something went wrong while processing your request.")
}

func bookURL(id uint) string {
	return fmt.Sprintf("/books/%d", id)
}

func listFilter(query, genre, available string) books.ListFilter {
	filter := books.ListFilter{Query: strings.TrimSpace(query)}
	if g, ok := entities.ParseGenre(genre); ok {
		filter.Genre = g
	}
	if available != "" {
		if v, ok := forms.ParseAvailability(available); ok {
			filter.Available = &v
		}
	}
	return filter
}

func availabilityValue(v *bool) string {
	if v == nil {
		return ""
	}
	if *v {
		return "true"
	}
	return "false"
}
