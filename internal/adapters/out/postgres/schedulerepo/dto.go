// Package schedulerepo persists dated schedule entries. The table carries a
// unique index on (standing_order_id, scheduled_date); inserts rely on it to
// stay idempotent under concurrency.
package schedulerepo

import (
	"time"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/schedule"

	"github.com/google/uuid"
)

// OrderDateIndex is the unique index that makes generation idempotent.
const OrderDateIndex = "ux_schedules_order_date"

type ScheduleDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	StandingOrderID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:ux_schedules_order_date,priority:1"`
	ScheduledDate    time.Time  `gorm:"type:date;not null;uniqueIndex:ux_schedules_order_date,priority:2;index:ix_schedules_date_status,priority:1"`
	Status           string     `gorm:"size:20;not null;index:ix_schedules_date_status,priority:2"`
	OrderCreatedDate *time.Time ``
	OrderCreatedBy   string     `gorm:"size:100;not null;default:''"`
	OrderReference   string     `gorm:"size:100;not null;default:''"`
	Notes            string     `gorm:"type:text;not null;default:''"`
	CreatedAt        time.Time  `gorm:"autoCreateTime:false;not null"`
}

func (ScheduleDTO) TableName() string {
	return "standing_order_schedules"
}

func fromDomain(s *schedule.Schedule) ScheduleDTO {
	return ScheduleDTO{
		ID:               s.ID().Bytes(),
		StandingOrderID:  s.StandingOrderID().Bytes(),
		ScheduledDate:    s.ScheduledDate().Time(),
		Status:           s.Status().String(),
		OrderCreatedDate: s.OrderCreatedDate(),
		OrderCreatedBy:   s.OrderCreatedBy(),
		OrderReference:   s.OrderReference(),
		Notes:            s.Notes(),
		CreatedAt:        s.CreatedAt(),
	}
}

func toDomain(dto ScheduleDTO) (*schedule.Schedule, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.StandingOrderID[:])
	if err != nil {
		return nil, err
	}

	status, err := schedule.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return schedule.RestoreSchedule(
		id,
		orderID,
		kernel.DateOf(dto.ScheduledDate),
		status,
		dto.OrderCreatedDate,
		dto.OrderCreatedBy,
		dto.OrderReference,
		dto.Notes,
		dto.CreatedAt,
	)
}
