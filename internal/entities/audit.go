package entities

import "time"

type AuditAction string

const (
	AuditActionCreate       AuditAction = "book_create"
	AuditActionUpdate       AuditAction = "book_update"
	AuditActionDelete       AuditAction = "book_delete"
	AuditActionAvailability AuditAction = "book_availability"
	AuditActionImport       AuditAction = "book_import"
)

// AuditEvent records a single change to the catalog.
type AuditEvent struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	Action      AuditAction `gorm:"index;size:50" json:"action"`
	BookID      uint        `gorm:"index" json:"book_id"`
	BookTitle   string      `gorm:"size:200" json:"book_title"`
	Description string      `gorm:"size:500" json:"description"`
	RequestID   string      `gorm:"size:36" json:"request_id,omitempty"`
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
