// Package auditlogrepo appends standing order lifecycle entries. Details are
// stored as a JSON document.
package auditlogrepo

import (
	"context"
	"encoding/json"
	"time"

	"standingorders/internal/core/domain/model/auditlog"
	"standingorders/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LogDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	StandingOrderID uuid.UUID `gorm:"type:uuid;not null;index:ix_logs_order_performed,priority:1"`
	ActionType      string    `gorm:"size:50;not null"`
	ActionDetails   string    `gorm:"type:jsonb;not null"`
	PerformedBy     string    `gorm:"size:100;not null"`
	PerformedAt     time.Time `gorm:"not null;index:ix_logs_order_performed,priority:2"`
}

func (LogDTO) TableName() string {
	return "standing_order_logs"
}

type GormAuditLogRepository struct {
	db *gorm.DB
}

func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

func (r *GormAuditLogRepository) Append(ctx context.Context, entry *auditlog.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	details, err := json.Marshal(entry.Details())
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("action details", err)
	}

	dto := LogDTO{
		ID:              entry.ID().Bytes(),
		StandingOrderID: entry.StandingOrderID().Bytes(),
		ActionType:      entry.ActionType().String(),
		ActionDetails:   string(details),
		PerformedBy:     entry.PerformedBy(),
		PerformedAt:     entry.PerformedAt(),
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}
