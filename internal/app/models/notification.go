package models

import (
	"encoding/json"
	"time"
)

// Notification categories
const (
	NotificationCategoryEnrollment = "ENROLLMENT"
	NotificationCategorySchedule   = "SCHEDULE"
)

// Notification is an inbox entry for one user
type Notification struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	Category  string    `json:"category" db:"category"`
	IsRead    bool      `json:"isRead" db:"is_read"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Audit actions and entity types
const (
	AuditActionSectionCreated  = "SECTION_CREATED"
	AuditActionRequestCreated  = "ENROLLMENT_REQUEST_CREATED"
	AuditActionRequestApproved = "ENROLLMENT_REQUEST_APPROVED"
	AuditActionRequestRejected = "ENROLLMENT_REQUEST_REJECTED"

	AuditEntitySection           = "SECTION"
	AuditEntityEnrollmentRequest = "ENROLLMENT_REQUEST"
)

// AuditLog records who did what to which entity
type AuditLog struct {
	ID          int64           `json:"id" db:"id"`
	ActorUserID int64           `json:"actorUserId" db:"actor_user_id"`
	Action      string          `json:"action" db:"action"`
	EntityType  string          `json:"entityType" db:"entity_type"`
	EntityID    int64           `json:"entityId" db:"entity_id"`
	Details     json.RawMessage `json:"details,omitempty" db:"details"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
}
