package queries

import (
	"errors"
	"time"

	"standingorders/internal/core/domain/model/auditlog"
	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/standingorder"
	"standingorders/internal/pkg/guard"
)

// RecentLogLimit caps the log entries returned with an order.
const RecentLogLimit = 20

var ErrGetStandingOrderQueryIsNotConstructed = errors.New(
	"GetStandingOrderQuery must be created via NewGetStandingOrderQuery constructor",
)

// GetStandingOrderQuery reads one order with the schedule of a month, the
// current month when none is given.
type GetStandingOrderQuery struct {
	id    kernel.UUID
	month *kernel.Date

	guard guard.ConstructorGuard
}

func NewGetStandingOrderQuery(id kernel.UUID, month *kernel.Date) (GetStandingOrderQuery, error) {
	if err := id.Validate(); err != nil {
		return GetStandingOrderQuery{}, err
	}
	if month != nil {
		if err := month.Validate(); err != nil {
			return GetStandingOrderQuery{}, err
		}
		start := month.StartOfMonth()
		month = &start
	}

	return GetStandingOrderQuery{
		id:    id,
		month: month,
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (q GetStandingOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetStandingOrderQueryIsNotConstructed)
}

func (q GetStandingOrderQuery) ID() kernel.UUID {
	return q.id
}

func (q GetStandingOrderQuery) Month() *kernel.Date {
	return q.month
}

type StandingOrderDetail struct {
	ID                  kernel.UUID
	CustomerID          kernel.UUID
	CustomerName        string
	DeliveryDays        standingorder.WeekdaySet
	StartDate           kernel.Date
	EndDate             *kernel.Date
	Status              standingorder.Status
	SpecialInstructions string
	CreatedBy           string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Items               []ItemView
}

type LogView struct {
	ID          kernel.UUID
	ActionType  auditlog.ActionType
	Details     map[string]any
	PerformedBy string
	PerformedAt time.Time
}

type GetStandingOrderQueryResponse struct {
	Order     StandingOrderDetail
	Month     kernel.Date
	Schedules []ScheduleView
	Logs      []LogView
}
