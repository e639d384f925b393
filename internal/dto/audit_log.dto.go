package dto

import (
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// AuditLogDTO devolve Metadata como JSON de verdade em vez de string.
type AuditLogDTO struct {
	ID        string          `json:"id"`
	UserID    *string         `json:"userId"`
	Action    string          `json:"action"`
	Entity    string          `json:"entity"`
	EntityID  *string         `json:"entityId"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func NewAuditLogs(rows []models.AuditLog) []AuditLogDTO {
	out := make([]AuditLogDTO, 0, len(rows))
	for _, r := range rows {
		d := AuditLogDTO{
			ID:        r.ID,
			UserID:    r.UserID,
			Action:    r.Action,
			Entity:    r.Entity,
			EntityID:  r.EntityID,
			CreatedAt: r.CreatedAt,
		}
		if r.Metadata != "" && json.Valid([]byte(r.Metadata)) {
			d.Metadata = json.RawMessage(r.Metadata)
		}
		out = append(out, d)
	}
	return out
}
