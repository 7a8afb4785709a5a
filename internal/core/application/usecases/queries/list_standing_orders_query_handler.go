package queries

import (
	"context"
	"time"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/schedule"
	"standingorders/internal/core/domain/model/standingorder"
	"standingorders/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListStandingOrdersQueryHandler struct {
	db    *gorm.DB
	clock ports.Clock
}

func NewListStandingOrdersQueryHandler(db *gorm.DB, clock ports.Clock) ListStandingOrdersQueryHandler {
	return ListStandingOrdersQueryHandler{db: db, clock: clock}
}

// Handle lists every order that has not ended, ordered by customer name, and
// derives today's deliveries and the week's pending count from them.
func (h ListStandingOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListStandingOrdersQuery,
) (ListStandingOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListStandingOrdersQueryResponse{}, err
	}

	today := kernel.DateOf(h.clock.Now())
	db := h.db.WithContext(ctx)

	orders, err := h.loadOrders(db)
	if err != nil {
		return ListStandingOrdersQueryResponse{}, err
	}

	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID.Bytes())
	}
	items, err := loadItems(ctx, h.db, ids)
	if err != nil {
		return ListStandingOrdersQueryResponse{}, err
	}

	todays, err := h.loadTodaySchedules(db, today)
	if err != nil {
		return ListStandingOrdersQueryResponse{}, err
	}

	resp := ListStandingOrdersQueryResponse{
		Today:           today,
		Orders:          orders,
		TodayDeliveries: make([]TodayDelivery, 0),
	}
	for i := range resp.Orders {
		o := &resp.Orders[i]
		o.Items = items[o.ID.Bytes()]
		if o.Items == nil {
			o.Items = []ItemView{}
		}

		switch o.Status {
		case standingorder.Active:
			resp.ActiveCount++
		case standingorder.Paused:
			resp.PausedCount++
		}

		if o.Status != standingorder.Active || !o.DeliveryDays.Contains(today.Weekday()) {
			continue
		}
		delivery := TodayDelivery{
			StandingOrderID: o.ID,
			CustomerName:    o.CustomerName,
			Status:          schedule.Pending,
			Items:           o.Items,
		}
		if s, ok := todays[o.ID.Bytes()]; ok {
			id := s.ID
			delivery.ScheduleID = &id
			delivery.Status = s.Status
		}
		resp.TodayDeliveries = append(resp.TodayDeliveries, delivery)
	}

	weekStart := today.StartOfISOWeek()
	var pending int64
	err = db.Raw(`
		SELECT COUNT(*)
		FROM standing_order_schedules
		WHERE scheduled_date BETWEEN CAST(? AS date) AND CAST(? AS date)
			AND status = ?
	`, weekStart.String(), weekStart.AddDays(6).String(), schedule.Pending.String()).Scan(&pending).Error
	if err != nil {
		return ListStandingOrdersQueryResponse{}, err
	}
	resp.PendingThisWeek = int(pending)

	return resp, nil
}

func (h ListStandingOrdersQueryHandler) loadOrders(db *gorm.DB) ([]StandingOrderSummary, error) {
	rows, err := db.Raw(`
		SELECT so.id, so.customer_id, c.name, so.delivery_days, so.start_date, so.end_date,
			so.status, so.special_instructions
		FROM standing_orders so
		JOIN customers c ON c.id = so.customer_id
		WHERE so.status <> ?
		ORDER BY c.name, so.created_at, so.id
	`, standingorder.Ended.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]StandingOrderSummary, 0)
	for rows.Next() {
		var (
			id, customerID       uuid.UUID
			deliveryDays, status string
			startDate            time.Time
			endDate              *time.Time
			o                    StandingOrderSummary
		)
		if err := rows.Scan(&id, &customerID, &o.CustomerName, &deliveryDays, &startDate, &endDate,
			&status, &o.SpecialInstructions); err != nil {
			return nil, err
		}

		if o.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if o.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return nil, err
		}
		if o.DeliveryDays, err = standingorder.ParseWeekdaySet(deliveryDays); err != nil {
			return nil, err
		}
		if o.Status, err = standingorder.ParseStatus(status); err != nil {
			return nil, err
		}
		o.StartDate = kernel.DateOf(startDate)
		if endDate != nil {
			end := kernel.DateOf(*endDate)
			o.EndDate = &end
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

func (h ListStandingOrdersQueryHandler) loadTodaySchedules(db *gorm.DB, today kernel.Date) (map[uuid.UUID]ScheduleView, error) {
	rows, err := db.Raw(`
		SELECT `+scheduleColumns+`
		FROM standing_order_schedules s
		WHERE s.scheduled_date = CAST(? AS date)
	`, today.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byOrder := make(map[uuid.UUID]ScheduleView)
	for rows.Next() {
		var row scheduleRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, err
		}
		view, err := row.view()
		if err != nil {
			return nil, err
		}
		byOrder[row.standingOrderID] = view
	}

	return byOrder, rows.Err()
}
