package services

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/bookcatalog/internal/database/books"
	"github.com/mrlokans/bookcatalog/internal/entities"
	"github.com/mrlokans/bookcatalog/internal/forms"
)

type recordedChange struct {
	action entities.AuditAction
	bookID uint
}

type fakeRecorder struct {
	changes []recordedChange
}

func (f *fakeRecorder) LogBookChange(_ context.Context, action entities.AuditAction, book *entities.Book) {
	f.changes = append(f.changes, recordedChange{action: action, bookID: book.ID})
}

func setupCatalog(t *testing.T) (*CatalogService, *books.Repository, *fakeRecorder) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog.db")), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Book{}))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})

	validator, err := forms.New()
	require.NoError(t, err)

	repo := books.NewRepository(db)
	recorder := &fakeRecorder{}
	return NewCatalogService(repo, validator, recorder), repo, recorder
}

func duneForm() *forms.BookForm {
	return &forms.BookForm{
		Title:           "Dune",
		Author:          "Herbert",
		ISBN:            "9780441013593",
		Genre:           "sci_fi",
		PublicationDate: "1965-08-01",
		Pages:           "412",
		Available:       "true",
	}
}

func TestCatalogService_DuneLifecycle(t *testing.T) {
	svc, _, recorder := setupCatalog(t)
	ctx := context.Background()

	created, err := svc.CreateBook(ctx, duneForm())
	require.NoError(t, err)
	assert.Equal(t, "Dune", created.Title)
	assert.True(t, created.CreatedAt.Equal(created.UpdatedAt))

	fetched, err := svc.GetBook(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Herbert", fetched.Author)

	time.Sleep(5 * time.Millisecond)

	form := forms.BookFormFromBook(fetched)
	form.Pages = "420"
	updated, err := svc.UpdateBook(ctx, created.ID, form)
	require.NoError(t, err)
	assert.Equal(t, 420, updated.Pages)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	deleted, err := svc.DeleteBook(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", deleted.Title)

	list, err := svc.ListBooks(ctx, books.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.GetBook(ctx, created.ID)
	assert.ErrorIs(t, err, entities.ErrBookNotFound)

	assert.Equal(t, []recordedChange{
		{entities.AuditActionCreate, created.ID},
		{entities.AuditActionUpdate, created.ID},
		{entities.AuditActionDelete, created.ID},
	}, recorder.changes)
}

func TestCatalogService_CreateBook_InvalidISBN(t *testing.T) {
	svc, repo, recorder := setupCatalog(t)
	ctx := context.Background()

	form := duneForm()
	form.ISBN = "123"
	_, err := svc.CreateBook(ctx, form)

	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{forms.MsgISBNLength}, verr.Fields.Get("isbn"))

	count, err := repo.CountBooks(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, recorder.changes)
}

func TestCatalogService_CreateBook_DuplicateISBN(t *testing.T) {
	svc, repo, recorder := setupCatalog(t)
	ctx := context.Background()

	_, err := svc.CreateBook(ctx, duneForm())
	require.NoError(t, err)

	other := duneForm()
	other.Title = "Dune Messiah"
	_, err = svc.CreateBook(ctx, other)

	assert.ErrorIs(t, err, entities.ErrDuplicateISBN)
	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{forms.MsgDuplicateISBN}, verr.Fields.Get("isbn"))

	count, err := repo.CountBooks(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Len(t, recorder.changes, 1)
}

func TestCatalogService_UpdateBook_Invalid(t *testing.T) {
	svc, _, _ := setupCatalog(t)
	ctx := context.Background()

	created, err := svc.CreateBook(ctx, duneForm())
	require.NoError(t, err)

	form := duneForm()
	form.ISBN = "97804410135930"
	_, err = svc.UpdateBook(ctx, created.ID, form)
	var verr *forms.ValidationError
	require.ErrorAs(t, err, &verr)

	stored, err := svc.GetBook(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "9780441013593", stored.ISBN)
}

func TestCatalogService_NotFound(t *testing.T) {
	svc, _, recorder := setupCatalog(t)
	ctx := context.Background()

	_, err := svc.UpdateBook(ctx, 404, duneForm())
	assert.ErrorIs(t, err, entities.ErrBookNotFound)

	_, err = svc.DeleteBook(ctx, 404)
	assert.ErrorIs(t, err, entities.ErrBookNotFound)

	_, err = svc.SetAvailability(ctx, 404, false)
	assert.ErrorIs(t, err, entities.ErrBookNotFound)

	assert.Empty(t, recorder.changes)
}

func TestCatalogService_SetAvailability(t *testing.T) {
	svc, _, recorder := setupCatalog(t)
	ctx := context.Background()

	created, err := svc.CreateBook(ctx, duneForm())
	require.NoError(t, err)

	book, err := svc.SetAvailability(ctx, created.ID, false)
	require.NoError(t, err)
	assert.False(t, book.Available)
	assert.Equal(t, entities.AuditActionAvailability, recorder.changes[len(recorder.changes)-1].action)
}

func TestCatalogService_SearchTolkien(t *testing.T) {
	svc, _, _ := setupCatalog(t)
	ctx := context.Background()
	validator := svc.Validator()

	for _, v := range []url.Values{
		{"title": {"The Hobbit"}, "author": {"J.R.R. Tolkien"}, "isbn": {"9780547928227"}, "publication_date": {"1937-09-21"}, "pages": {"310"}},
		{"title": {"Tolkien and the Great War"}, "author": {"John Garth"}, "isbn": {"9780618574810"}, "publication_date": {"2003-11-03"}, "pages": {"416"}},
		{"title": {"Dune"}, "author": {"Herbert"}, "isbn": {"9780441013593"}, "publication_date": {"1965-08-01"}, "pages": {"412"}},
	} {
		form, err := validator.Decode(v)
		require.NoError(t, err)
		_, err = svc.CreateBook(ctx, form)
		require.NoError(t, err)
	}

	list, err := svc.ListBooks(ctx, books.ListFilter{Query: "tolkien"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, b := range list {
		haystack := strings.ToLower(b.Title + b.Author + b.ISBN)
		assert.Contains(t, haystack, "tolkien")
	}
}

func TestStoreError(t *testing.T) {
	assert.ErrorIs(t, storeError(entities.ErrBookNotFound), entities.ErrBookNotFound)

	boom := errors.New("disk full")
	err := storeError(boom)
	assert.ErrorIs(t, err, boom)
	var verr *forms.ValidationError
	assert.False(t, errors.As(err, &verr))
}
