package standingorderrepo

import (
	"context"
	"errors"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/standingorder"
	"standingorders/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStandingOrderRepository implements ports.StandingOrderRepository using GORM.
type GormStandingOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormStandingOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormStandingOrderRepository {
	return &GormStandingOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order and its items.
func (r *GormStandingOrderRepository) Add(ctx context.Context, aggregate *standingorder.StandingOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column of the order, then replaces its items.
func (r *GormStandingOrderRepository) Update(ctx context.Context, aggregate *standingorder.StandingOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&StandingOrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("standing_order", aggregate.ID().String())
	}

	if err := db.Where("standing_order_id = ?", dto.ID).Delete(&ItemDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Items) > 0 {
		if err := db.Create(&dto.Items).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its items.
func (r *GormStandingOrderRepository) Get(ctx context.Context, id kernel.UUID) (*standingorder.StandingOrder, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate is Get with a row lock on the order held until the
// transaction ends.
func (r *GormStandingOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*standingorder.StandingOrder, error) {
	return r.get(ctx, id, true)
}

func (r *GormStandingOrderRepository) get(ctx context.Context, id kernel.UUID, lock bool) (*standingorder.StandingOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Preload("Items", orderedItems)
	if lock {
		query = query.Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate})
	}

	var dto StandingOrderDTO
	if err := query.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("standing_order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllActive retrieves every Active order, oldest first.
func (r *GormStandingOrderRepository) GetAllActive(ctx context.Context) ([]*standingorder.StandingOrder, error) {
	var dtos []StandingOrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Order("created_at, id").
		Find(&dtos, "status = ?", standingorder.Active.String()).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*standingorder.StandingOrder, 0, len(dtos))
	for _, dto := range dtos {
		so, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, so)
	}

	return orders, nil
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
