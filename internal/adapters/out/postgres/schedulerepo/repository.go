package schedulerepo

import (
	"context"
	"errors"

	"standingorders/internal/adapters/out/postgres/pgerrs"
	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/schedule"
	"standingorders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormScheduleRepository implements ports.ScheduleRepository using GORM.
type GormScheduleRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormScheduleRepository(db *gorm.DB, tracker aggregateTracker) *GormScheduleRepository {
	return &GormScheduleRepository{
		db:      db,
		tracker: tracker,
	}
}

// AddIfAbsent inserts with ON CONFLICT DO NOTHING on the (order, date) index.
// A conflict, or a duplicate key error from a driver that reports one anyway,
// means another writer already created the row.
func (r *GormScheduleRepository) AddIfAbsent(ctx context.Context, s *schedule.Schedule) (bool, error) {
	if err := s.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(s)
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "standing_order_id"}, {Name: "scheduled_date"}},
			DoNothing: true,
		}).
		Create(&dto)
	if result.Error != nil {
		if pgerrs.IsUniqueViolation(result.Error, "") {
			return false, nil
		}
		return false, result.Error
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	r.tracker.TrackAggregate(s.ID(), s)
	return true, nil
}

func (r *GormScheduleRepository) Get(ctx context.Context, id kernel.UUID) (*schedule.Schedule, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ScheduleDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("schedule", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Update writes the entry only while its stored status equals expected. When
// no row matches, it tells a missing entry apart from one that another writer
// already moved on.
func (r *GormScheduleRepository) Update(ctx context.Context, s *schedule.Schedule, expected schedule.Status) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := fromDomain(s)
	db := r.db.WithContext(ctx)

	result := db.Model(&ScheduleDTO{}).
		Where("id = ? AND status = ?", dto.ID, expected.String()).
		Select("status", "order_created_date", "order_created_by", "order_reference", "notes").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		current, err := r.Get(ctx, s.ID())
		if err != nil {
			return err
		}
		return errs.NewInvalidStateError("schedule", current.Status().String(), "update")
	}

	r.tracker.TrackAggregate(s.ID(), s)
	return nil
}

// SkipPendingAfter marks future Pending entries of an order as Skipped.
func (r *GormScheduleRepository) SkipPendingAfter(
	ctx context.Context,
	standingOrderID kernel.UUID,
	after kernel.Date,
	note string,
) (int, error) {
	result := r.db.WithContext(ctx).
		Model(&ScheduleDTO{}).
		Where("standing_order_id = ? AND status = ? AND scheduled_date > ?",
			standingOrderID.Bytes(), schedule.Pending.String(), after.Time()).
		Updates(map[string]any{
			"status": schedule.Skipped.String(),
			"notes":  note,
		})
	if result.Error != nil {
		return 0, result.Error
	}

	return int(result.RowsAffected), nil
}

// DeletePendingAfter removes future Pending entries of an order.
func (r *GormScheduleRepository) DeletePendingAfter(ctx context.Context, standingOrderID kernel.UUID, after kernel.Date) (int, error) {
	result := r.db.WithContext(ctx).
		Where("standing_order_id = ? AND status = ? AND scheduled_date > ?",
			standingOrderID.Bytes(), schedule.Pending.String(), after.Time()).
		Delete(&ScheduleDTO{})
	if result.Error != nil {
		return 0, result.Error
	}

	return int(result.RowsAffected), nil
}
