package queries

import (
	"errors"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/schedule"
	"standingorders/internal/core/domain/model/standingorder"
	"standingorders/internal/pkg/guard"
)

var ErrListStandingOrdersQueryIsNotConstructed = errors.New(
	"ListStandingOrdersQuery must be created via NewListStandingOrdersQuery constructor",
)

// ListStandingOrdersQuery reads the standing orders dashboard. It has no
// parameters.
type ListStandingOrdersQuery struct {
	guard guard.ConstructorGuard
}

func NewListStandingOrdersQuery() ListStandingOrdersQuery {
	return ListStandingOrdersQuery{guard: guard.NewConstructorGuard()}
}

func (q ListStandingOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListStandingOrdersQueryIsNotConstructed)
}

type StandingOrderSummary struct {
	ID                  kernel.UUID
	CustomerID          kernel.UUID
	CustomerName        string
	DeliveryDays        standingorder.WeekdaySet
	StartDate           kernel.Date
	EndDate             *kernel.Date
	Status              standingorder.Status
	SpecialInstructions string
	Items               []ItemView
}

// TodayDelivery is an Active order due today. ScheduleID is nil when no entry
// was generated for today yet; Status is then Pending.
type TodayDelivery struct {
	StandingOrderID kernel.UUID
	CustomerName    string
	ScheduleID      *kernel.UUID
	Status          schedule.Status
	Items           []ItemView
}

type ListStandingOrdersQueryResponse struct {
	Today           kernel.Date
	Orders          []StandingOrderSummary
	ActiveCount     int
	PausedCount     int
	TodayDeliveries []TodayDelivery
	PendingThisWeek int
}
