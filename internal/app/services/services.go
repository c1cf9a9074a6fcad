// Package services holds the scheduling and enrollment workflows. Services depend on
// the repositories.Store interface and on the Notifier and AuditRecorder collaborators;
// the HTTP layer and the CLI call into them with an explicit actor id.
package services

import (
	"context"

	"github.com/rs/zerolog"
)

// Notifier delivers a message to users. Delivery failures never undo the operation
// that triggered them.
type Notifier interface {
	Notify(ctx context.Context, title, body string, recipientUserIDs []int64, category string) error
}

// AuditRecorder keeps a trail of who changed what
type AuditRecorder interface {
	Record(ctx context.Context, actorUserID int64, action, entityType string, entityID int64, details interface{}) error
}

// sideEffects runs notification and audit calls after a commit, logging failures
type sideEffects struct {
	notifier Notifier
	audit    AuditRecorder
	logger   zerolog.Logger
}

func (s sideEffects) notify(ctx context.Context, title, body string, recipients []int64, category string) {
	if s.notifier == nil || len(recipients) == 0 {
		return
	}
	if err := s.notifier.Notify(ctx, title, body, recipients, category); err != nil {
		s.logger.Warn().Err(err).Str("title", title).Ints64("recipients", recipients).Msg("Notification failed")
	}
}

func (s sideEffects) record(ctx context.Context, actorID int64, action, entityType string, entityID int64, details interface{}) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, actorID, action, entityType, entityID, details); err != nil {
		s.logger.Warn().Err(err).Str("action", action).Int64("entityID", entityID).Msg("Audit record failed")
	}
}
