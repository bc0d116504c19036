package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/coach-crm/internal/audit"
	"github.com/BruksfildServices01/coach-crm/internal/models"
)

type AuditGormRepository struct {
	db *gorm.DB
}

func NewAuditGormRepository(db *gorm.DB) *AuditGormRepository {
	return &AuditGormRepository{db: db}
}

var _ audit.Store = (*AuditGormRepository)(nil)

var errNoAudit = errors.New("audit log not found")

func (r *AuditGormRepository) CreateAuditLog(
	ctx context.Context,
	log *models.AuditLog,
) error {
	err := r.db.WithContext(ctx).Create(log).Error
	return wrapErr(err, errNoAudit, "create_audit_log", "action", log.Action)
}

// ListAuditLogs is always bound to one coach.
func (r *AuditGormRepository) ListAuditLogs(
	ctx context.Context,
	q audit.Query,
) ([]models.AuditLog, int64, error) {

	base := r.db.WithContext(ctx).
		Model(&models.AuditLog{}).
		Where("coach_id = ?", q.CoachID)

	if q.Action != "" {
		base = base.Where("action = ?", q.Action)
	}
	if q.Entity != "" {
		base = base.Where("entity = ?", q.Entity)
	}
	if q.From != nil {
		base = base.Where("created_at >= ?", *q.From)
	}
	if q.To != nil {
		base = base.Where("created_at < ?", *q.To)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, wrapErr(err, errNoAudit, "count_audit_logs", "coach_id", q.CoachID)
	}

	var logs []models.AuditLog
	if err := base.
		Order("created_at DESC, id DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, wrapErr(err, errNoAudit, "list_audit_logs", "coach_id", q.CoachID)
	}

	return logs, total, nil
}
