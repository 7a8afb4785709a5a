package queries

import (
	"context"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/schedule"
	"standingorders/internal/core/domain/model/standingorder"
	"standingorders/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetScheduleViewQueryHandler reads the delivery calendar. Entries of
// orders that are currently paused are left out; entries of ended orders
// stay visible as history.
type GetScheduleViewQueryHandler struct {
	db    *gorm.DB
	clock ports.Clock
}

func NewGetScheduleViewQueryHandler(db *gorm.DB, clock ports.Clock) GetScheduleViewQueryHandler {
	return GetScheduleViewQueryHandler{db: db, clock: clock}
}

// Handle groups entries by date ascending and, within a date, by customer
// name.
func (h GetScheduleViewQueryHandler) Handle(
	ctx context.Context,
	query GetScheduleViewQuery,
) (GetScheduleViewQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetScheduleViewQueryResponse{}, err
	}

	target := kernel.DateOf(h.clock.Now())
	if t := query.Target(); t != nil {
		target = *t
	}
	from, to := query.ViewType().Bounds(target)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT `+scheduleColumns+`,
			so.customer_id,
			c.name,
			so.special_instructions
		FROM standing_order_schedules s
		JOIN standing_orders so ON so.id = s.standing_order_id
		JOIN customers c ON c.id = so.customer_id
		WHERE s.scheduled_date BETWEEN CAST(? AS date) AND CAST(? AS date)
			AND so.status <> ?
		ORDER BY s.scheduled_date, c.name, s.id
	`, from.String(), to.String(), standingorder.Paused.String()).Rows()
	if err != nil {
		return GetScheduleViewQueryResponse{}, err
	}
	defer rows.Close()

	entries := make([]ScheduleEntry, 0)
	orderIDs := make([]uuid.UUID, 0)
	for rows.Next() {
		var row scheduleRow
		var customerID uuid.UUID
		var entry ScheduleEntry
		dest := append(row.dest(), &customerID, &entry.CustomerName, &entry.SpecialInstructions)
		if err := rows.Scan(dest...); err != nil {
			return GetScheduleViewQueryResponse{}, err
		}

		if entry.ScheduleView, err = row.view(); err != nil {
			return GetScheduleViewQueryResponse{}, err
		}
		if entry.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
			return GetScheduleViewQueryResponse{}, err
		}
		entries = append(entries, entry)
		orderIDs = append(orderIDs, row.standingOrderID)
	}
	if err := rows.Err(); err != nil {
		return GetScheduleViewQueryResponse{}, err
	}

	items, err := loadItems(ctx, h.db, uniqueIDs(orderIDs))
	if err != nil {
		return GetScheduleViewQueryResponse{}, err
	}

	resp := GetScheduleViewQueryResponse{
		ViewType: query.ViewType(),
		Target:   target,
		From:     from,
		To:       to,
		Days:     make([]ScheduleDay, 0),
	}
	for i := range entries {
		entry := entries[i]
		entry.Items = items[entry.StandingOrderID.Bytes()]
		if entry.Items == nil {
			entry.Items = []ItemView{}
		}

		resp.Totals.add(entry.Status)
		if n := len(resp.Days); n == 0 || !resp.Days[n-1].Date.Equal(entry.ScheduledDate) {
			resp.Days = append(resp.Days, ScheduleDay{Date: entry.ScheduledDate})
		}
		last := &resp.Days[len(resp.Days)-1]
		last.Entries = append(last.Entries, entry)
	}

	return resp, nil
}

func (t *ScheduleTotals) add(status schedule.Status) {
	t.Total++
	switch status {
	case schedule.Created:
		t.Completed++
	case schedule.Pending:
		t.Pending++
	case schedule.Skipped:
		t.Skipped++
	}
}
