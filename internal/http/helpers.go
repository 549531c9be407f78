package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/mrlokans/bookcatalog/internal/logging"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// BookListResponse is returned by the JSON list endpoint.
type BookListResponse struct {
	Books any `json:"books"`
	Count int `json:"count"`
}

// --- Error Response Helpers ---

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.IndentedJSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	logError(c, err, context)
	c.IndentedJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

func logError(c *gin.Context, err error, context string) {
	log.Error().
		Err(err).
		Str("request_id", logging.RequestIDFromContext(c.Request.Context())).
		Str("context", context).
		Msg("Internal error")
}

// --- Parameter Parsing ---

// parseID extracts an unsigned integer ID from URL parameters. Anything that
// is not a positive number cannot name a book, so callers answer 404.
func parseID(c *gin.Context, paramName string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseIDParam is parseID for JSON endpoints; it writes the 404 itself.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	id, ok := parseID(c, paramName)
	if !ok {
		respondNotFound(c, "book")
	}
	return id, ok
}
