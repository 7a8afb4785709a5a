package queries

import (
	"context"
	"time"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/schedule"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ItemView is one product line of a standing order.
type ItemView struct {
	ProductCode  string
	ProductName  string
	Quantity     int
	UnitType     string
	SpecialNotes string
}

// ScheduleView is a dated schedule entry as shown on calendars and detail
// pages.
type ScheduleView struct {
	ID               kernel.UUID
	StandingOrderID  kernel.UUID
	ScheduledDate    kernel.Date
	Status           schedule.Status
	OrderCreatedDate *time.Time
	OrderCreatedBy   string
	OrderReference   string
	Notes            string
}

type scheduleRow struct {
	id               uuid.UUID
	standingOrderID  uuid.UUID
	scheduledDate    time.Time
	status           string
	orderCreatedDate *time.Time
	orderCreatedBy   string
	orderReference   string
	notes            string
}

const scheduleColumns = `s.id, s.standing_order_id, s.scheduled_date, s.status,
	s.order_created_date, s.order_created_by, s.order_reference, s.notes`

func (r *scheduleRow) dest() []any {
	return []any{
		&r.id, &r.standingOrderID, &r.scheduledDate, &r.status,
		&r.orderCreatedDate, &r.orderCreatedBy, &r.orderReference, &r.notes,
	}
}

func (r *scheduleRow) view() (ScheduleView, error) {
	id, err := kernel.UUIDFromBytes(r.id[:])
	if err != nil {
		return ScheduleView{}, err
	}
	orderID, err := kernel.UUIDFromBytes(r.standingOrderID[:])
	if err != nil {
		return ScheduleView{}, err
	}
	status, err := schedule.ParseStatus(r.status)
	if err != nil {
		return ScheduleView{}, err
	}

	return ScheduleView{
		ID:               id,
		StandingOrderID:  orderID,
		ScheduledDate:    kernel.DateOf(r.scheduledDate),
		Status:           status,
		OrderCreatedDate: r.orderCreatedDate,
		OrderCreatedBy:   r.orderCreatedBy,
		OrderReference:   r.orderReference,
		Notes:            r.notes,
	}, nil
}

// loadItems returns the product lines of the given orders keyed by order id,
// each list in entry order.
func loadItems(ctx context.Context, db *gorm.DB, orderIDs []uuid.UUID) (map[uuid.UUID][]ItemView, error) {
	items := make(map[uuid.UUID][]ItemView, len(orderIDs))
	if len(orderIDs) == 0 {
		return items, nil
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT standing_order_id, product_code, product_name, quantity, unit_type, special_notes
		FROM standing_order_items
		WHERE standing_order_id IN ?
		ORDER BY standing_order_id, position
	`, orderIDs).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var orderID uuid.UUID
		var item ItemView
		if err := rows.Scan(&orderID, &item.ProductCode, &item.ProductName,
			&item.Quantity, &item.UnitType, &item.SpecialNotes); err != nil {
			return nil, err
		}
		items[orderID] = append(items[orderID], item)
	}

	return items, rows.Err()
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
