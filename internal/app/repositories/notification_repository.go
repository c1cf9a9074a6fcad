package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/db"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

// NotificationRepository persists inbox notifications
type NotificationRepository struct {
	db db.DBTX
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(conn db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: conn}
}

// Notify stores one notification per recipient
func (r *NotificationRepository) Notify(ctx context.Context, title, body string, recipientUserIDs []int64, category string) error {
	if len(recipientUserIDs) == 0 {
		return nil
	}

	builder := psql.Insert("notifications").Columns("user_id", "title", "body", "category")
	for _, userID := range recipientUserIDs {
		builder = builder.Values(userID, title, body, category)
	}
	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("building notify SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return apperrors.NewPersistenceError("create notifications", err)
	}
	return nil
}

// ListForUser returns the newest notifications of a user
func (r *NotificationRepository) ListForUser(ctx context.Context, userID int64, unreadOnly bool, limit uint64) ([]*models.Notification, error) {
	where := squirrel.Eq{"user_id": userID}
	if unreadOnly {
		where["is_read"] = false
	}
	sql, args, err := psql.Select("id", "user_id", "title", "body", "category", "is_read", "created_at").
		From("notifications").
		Where(where).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list notifications SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list notifications", err)
	}
	defer rows.Close()

	notifications := []*models.Notification{}
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Body, &n.Category, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, apperrors.NewPersistenceError("scan notification", err)
		}
		notifications = append(notifications, &n)
	}
	return notifications, rows.Err()
}

// AuditLogRepository persists audit records
type AuditLogRepository struct {
	db db.DBTX
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(conn db.DBTX) *AuditLogRepository {
	return &AuditLogRepository{db: conn}
}

// Record stores an audit entry; details are encoded as JSONB
func (r *AuditLogRepository) Record(ctx context.Context, actorUserID int64, action, entityType string, entityID int64, details interface{}) error {
	var payload []byte
	if details != nil {
		var err error
		if payload, err = json.Marshal(details); err != nil {
			return fmt.Errorf("encoding audit details: %w", err)
		}
	}

	sql, args, err := psql.Insert("audit_logs").
		Columns("actor_user_id", "action", "entity_type", "entity_id", "details").
		Values(actorUserID, action, entityType, entityID, payload).
		ToSql()
	if err != nil {
		return fmt.Errorf("building audit SQL: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		return apperrors.NewPersistenceError("record audit log", err)
	}
	return nil
}

// ListForEntity returns the audit trail of one entity, oldest first
func (r *AuditLogRepository) ListForEntity(ctx context.Context, entityType string, entityID int64) ([]*models.AuditLog, error) {
	sql, args, err := psql.Select("id", "actor_user_id", "action", "entity_type", "entity_id", "details", "created_at").
		From("audit_logs").
		Where(squirrel.Eq{"entity_type": entityType, "entity_id": entityID}).
		OrderBy("created_at", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list audit SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list audit logs", err)
	}
	defer rows.Close()

	logs := []*models.AuditLog{}
	for rows.Next() {
		var l models.AuditLog
		var details []byte
		if err := rows.Scan(&l.ID, &l.ActorUserID, &l.Action, &l.EntityType, &l.EntityID, &details, &l.CreatedAt); err != nil {
			return nil, apperrors.NewPersistenceError("scan audit log", err)
		}
		l.Details = json.RawMessage(details)
		logs = append(logs, &l)
	}
	return logs, rows.Err()
}
