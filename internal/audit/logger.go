// Package audit records coach-facing lifecycle events.
package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/logging"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

const (
	EntityAthlete      = "athlete"
	EntityTeam         = "team"
	EntityMembership   = "membership"
	EntityTrainingPlan = "training_plan"
	EntityCoach        = "coach"
)

type Event struct {
	CoachID   uint
	AccountID *uint
	Action    string
	Entity    string
	EntityID  *uint
	Metadata  any
}

type Query struct {
	CoachID uint
	Action  string
	Entity  string
	From    *time.Time
	To      *time.Time
	Limit   int
	Offset  int
}

type Store interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
	ListAuditLogs(ctx context.Context, q Query) ([]models.AuditLog, int64, error)
}

type Logger struct {
	store     Store
	logger    *slog.Logger
	onFailure func()
}

func New(store Store) *Logger {
	return &Logger{store: store, logger: slog.Default()}
}

// OnFailure registers fn to run after every failed write.
func (l *Logger) OnFailure(fn func()) *Logger {
	l.onFailure = fn
	return l
}

// Log writes ev. Failures are logged and never reach the caller. A nil
// Logger discards events.
func (l *Logger) Log(ctx context.Context, ev Event) {
	if l == nil || l.store == nil {
		return
	}

	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		CoachID:   ev.CoachID,
		AccountID: ev.AccountID,
		Action:    ev.Action,
		Entity:    ev.Entity,
		EntityID:  ev.EntityID,
		Metadata:  metaJSON,
	}

	if err := l.store.CreateAuditLog(ctx, &entry); err != nil {
		logging.LogError(ctx, l.logger, "audit write failed", err)
		if l.onFailure != nil {
			l.onFailure()
		}
	}
}

func (l *Logger) List(ctx context.Context, q Query) ([]models.AuditLog, int64, error) {
	return l.store.ListAuditLogs(ctx, q)
}
