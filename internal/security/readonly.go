package security

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKeyReadOnly is set on every request so templates can hide write controls.
const ContextKeyReadOnly = "read_only"

const readOnlyMessage = "The catalog is in read-only mode"

// ReadOnly blocks write operations when enabled. GET, HEAD and OPTIONS always pass.
type ReadOnly struct {
	enabled bool
}

// NewReadOnly creates a read-only middleware.
func NewReadOnly(enabled bool) *ReadOnly {
	return &ReadOnly{enabled: enabled}
}

// Handler returns a Gin middleware that rejects writes with 403.
func (m *ReadOnly) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyReadOnly, m.enabled)

		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if strings.Contains(c.GetHeader("Accept"), "application/json") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error":     readOnlyMessage,
				"read_only": true,
			})
			return
		}

		c.String(http.StatusForbidden, readOnlyMessage)
		c.Abort()
	}
}

// IsReadOnly reports whether the current request runs in read-only mode.
func IsReadOnly(c *gin.Context) bool {
	return c.GetBool(ContextKeyReadOnly)
}
