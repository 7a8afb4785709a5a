package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"standingorders/internal/core/domain/model/auditlog"
	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/standingorder"
	"standingorders/internal/core/ports"
	"standingorders/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetStandingOrderQueryHandler struct {
	db    *gorm.DB
	clock ports.Clock
}

func NewGetStandingOrderQueryHandler(db *gorm.DB, clock ports.Clock) GetStandingOrderQueryHandler {
	return GetStandingOrderQueryHandler{db: db, clock: clock}
}

// Handle returns the order, its items, the month's schedule by date and the
// most recent log entries, newest first.
func (h GetStandingOrderQueryHandler) Handle(
	ctx context.Context,
	query GetStandingOrderQuery,
) (GetStandingOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStandingOrderQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	order, err := h.loadOrder(db, query.ID())
	if err != nil {
		return GetStandingOrderQueryResponse{}, err
	}

	items, err := loadItems(ctx, h.db, []uuid.UUID{query.ID().Bytes()})
	if err != nil {
		return GetStandingOrderQueryResponse{}, err
	}
	order.Items = items[query.ID().Bytes()]
	if order.Items == nil {
		order.Items = []ItemView{}
	}

	month := kernel.DateOf(h.clock.Now()).StartOfMonth()
	if m := query.Month(); m != nil {
		month = *m
	}

	schedules, err := h.loadSchedules(db, query.ID(), month)
	if err != nil {
		return GetStandingOrderQueryResponse{}, err
	}

	logs, err := h.loadLogs(db, query.ID())
	if err != nil {
		return GetStandingOrderQueryResponse{}, err
	}

	return GetStandingOrderQueryResponse{
		Order:     order,
		Month:     month,
		Schedules: schedules,
		Logs:      logs,
	}, nil
}

func (h GetStandingOrderQueryHandler) loadOrder(db *gorm.DB, id kernel.UUID) (StandingOrderDetail, error) {
	var (
		orderID, customerID  uuid.UUID
		deliveryDays, status string
		startDate            time.Time
		endDate              *time.Time
		detail               StandingOrderDetail
	)

	row := db.Raw(`
		SELECT so.id, so.customer_id, c.name, so.delivery_days, so.start_date, so.end_date,
			so.status, so.special_instructions, so.created_by, so.created_at, so.updated_at
		FROM standing_orders so
		JOIN customers c ON c.id = so.customer_id
		WHERE so.id = ?
	`, id.Bytes()).Row()
	err := row.Scan(&orderID, &customerID, &detail.CustomerName, &deliveryDays, &startDate, &endDate,
		&status, &detail.SpecialInstructions, &detail.CreatedBy, &detail.CreatedAt, &detail.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StandingOrderDetail{}, errs.NewObjectNotFoundError("standing_order", id.String())
		}
		return StandingOrderDetail{}, err
	}

	detail.ID = id
	if detail.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return StandingOrderDetail{}, err
	}
	if detail.DeliveryDays, err = standingorder.ParseWeekdaySet(deliveryDays); err != nil {
		return StandingOrderDetail{}, err
	}
	if detail.Status, err = standingorder.ParseStatus(status); err != nil {
		return StandingOrderDetail{}, err
	}
	detail.StartDate = kernel.DateOf(startDate)
	if endDate != nil {
		end := kernel.DateOf(*endDate)
		detail.EndDate = &end
	}

	return detail, nil
}

func (h GetStandingOrderQueryHandler) loadSchedules(db *gorm.DB, id kernel.UUID, month kernel.Date) ([]ScheduleView, error) {
	rows, err := db.Raw(`
		SELECT `+scheduleColumns+`
		FROM standing_order_schedules s
		WHERE s.standing_order_id = ?
			AND s.scheduled_date BETWEEN CAST(? AS date) AND CAST(? AS date)
		ORDER BY s.scheduled_date
	`, id.Bytes(), month.StartOfMonth().String(), month.EndOfMonth().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	schedules := make([]ScheduleView, 0)
	for rows.Next() {
		var row scheduleRow
		if err := rows.Scan(row.dest()...); err != nil {
			return nil, err
		}
		view, err := row.view()
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, view)
	}

	return schedules, rows.Err()
}

func (h GetStandingOrderQueryHandler) loadLogs(db *gorm.DB, id kernel.UUID) ([]LogView, error) {
	rows, err := db.Raw(`
		SELECT id, action_type, action_details, performed_by, performed_at
		FROM standing_order_logs
		WHERE standing_order_id = ?
		ORDER BY performed_at DESC, id
		LIMIT ?
	`, id.Bytes(), RecentLogLimit).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]LogView, 0)
	for rows.Next() {
		var (
			logID   uuid.UUID
			action  string
			details []byte
			entry   LogView
		)
		if err := rows.Scan(&logID, &action, &details, &entry.PerformedBy, &entry.PerformedAt); err != nil {
			return nil, err
		}

		if entry.ID, err = kernel.UUIDFromBytes(logID[:]); err != nil {
			return nil, err
		}
		entry.ActionType = auditlog.ActionType(action)
		entry.Details = map[string]any{}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &entry.Details); err != nil {
				return nil, err
			}
		}
		logs = append(logs, entry)
	}

	return logs, rows.Err()
}
