package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/bookcatalog/internal/entities"
)

// BooksAPIController exposes the catalog read-only as JSON.
type BooksAPIController struct {
	catalog Catalog
}

func NewBooksAPIController(catalog Catalog) *BooksAPIController {
	return &BooksAPIController{catalog: catalog}
}

func (controller *BooksAPIController) ListBooks(c *gin.Context) {
	filter := listFilter(c.Query("q"), c.Query("genre"), c.Query("available"))

	result, err := controller.catalog.ListBooks(c.Request.Context(), filter)
	if err != nil {
		respondInternalError(c, err, "api list books")
		return
	}
	c.IndentedJSON(http.StatusOK, BookListResponse{Books: result, Count: len(result)})
}

func (controller *BooksAPIController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := controller.catalog.GetBook(c.Request.Context(), id)
	if errors.Is(err, entities.ErrBookNotFound) {
		respondNotFound(c, "book")
		return
	}
	if err != nil {
		respondInternalError(c, err, "api get book")
		return
	}
	c.IndentedJSON(http.StatusOK, book)
}
