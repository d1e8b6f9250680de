// Package auditrepo stores audit entries in the audit_logs table.
package auditrepo

import (
	"time"

	"fifo/internal/core/domain/model/audit"
	"fifo/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AuditLogDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username        string    `gorm:"column:username;size:128;not null"`
	UserDisplayName string    `gorm:"column:user_display_name;size:256;not null"`
	Action          string    `gorm:"column:action;size:16;not null"`
	Details         string    `gorm:"column:details;not null"`
	CreatedAt       time.Time `gorm:"column:created_at"`
}

func (AuditLogDTO) TableName() string {
	return "audit_logs"
}

func fromDomain(e *audit.Entry) AuditLogDTO {
	return AuditLogDTO{
		ID:              e.ID().Bytes(),
		Username:        e.Actor().Username(),
		UserDisplayName: e.Actor().DisplayName(),
		Action:          e.Action().String(),
		Details:         e.Details(),
		CreatedAt:       e.CreatedAt(),
	}
}

// ToDomain is exported for the audit listing query.
func ToDomain(dto AuditLogDTO) (*audit.Entry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	actor, err := audit.NewActor(dto.Username, dto.UserDisplayName)
	if err != nil {
		return nil, err
	}

	action, err := audit.ParseAction(dto.Action)
	if err != nil {
		return nil, err
	}

	return audit.RestoreEntry(id, actor, action, dto.Details, dto.CreatedAt)
}
