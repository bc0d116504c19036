package dto

import (
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/coach-crm/internal/models"
)

type AuditLogDTO struct {
	ID        uint            `json:"id"`
	AccountID *uint           `json:"accountId"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  *uint           `json:"entityId"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

type AuditLogPage struct {
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
	Total int64         `json:"total"`
	Data  []AuditLogDTO `json:"data"`
}

func FromAuditLogs(list []models.AuditLog) []AuditLogDTO {
	out := make([]AuditLogDTO, 0, len(list))
	for _, l := range list {
		d := AuditLogDTO{
			ID:        l.ID,
			AccountID: l.AccountID,
			Action:    l.Action,
			Entity:    l.Entity,
			EntityID:  l.EntityID,
			CreatedAt: l.CreatedAt,
		}
		if l.Metadata != "" && json.Valid([]byte(l.Metadata)) {
			d.Metadata = json.RawMessage(l.Metadata)
		}
		out = append(out, d)
	}
	return out
}
