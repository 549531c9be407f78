package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultAuditPageSize = 25

type AuditController struct {
	auditLog AuditLog
}

func NewAuditController(auditLog AuditLog) *AuditController {
	return &AuditController{auditLog: auditLog}
}

// GetAuditEvents returns paginated audit events as JSON, most recent first
// GET /api/audit
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultAuditPageSize)))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultAuditPageSize
	}
	offset := (page - 1) * limit

	events, total, err := ac.auditLog.GetEvents(c.Request.Context(), limit, offset)
	if err != nil {
		respondInternalError(c, err, "api list audit events")
		return
	}

	totalPages := (int(total) + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	c.IndentedJSON(http.StatusOK, gin.H{
		"events":       events,
		"page":         page,
		"limit":        limit,
		"total_pages":  totalPages,
		"total_events": total,
	})
}
