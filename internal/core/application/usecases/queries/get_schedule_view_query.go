package queries

import (
	"errors"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/pkg/guard"
)

var ErrGetScheduleViewQueryIsNotConstructed = errors.New(
	"GetScheduleViewQuery must be created via NewGetScheduleViewQuery constructor",
)

// GetScheduleViewQuery asks for the delivery calendar of a day, ISO week or
// month. Without a target date the view is centred on today.
type GetScheduleViewQuery struct {
	viewType ViewType
	target   *kernel.Date

	guard guard.ConstructorGuard
}

func NewGetScheduleViewQuery(viewType ViewType, target *kernel.Date) (GetScheduleViewQuery, error) {
	if err := viewType.Validate(); err != nil {
		return GetScheduleViewQuery{}, err
	}
	if target != nil {
		if err := target.Validate(); err != nil {
			return GetScheduleViewQuery{}, err
		}
	}

	return GetScheduleViewQuery{
		viewType: viewType,
		target:   target,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetScheduleViewQuery) Validate() error {
	return q.guard.Validate(ErrGetScheduleViewQueryIsNotConstructed)
}

func (q GetScheduleViewQuery) ViewType() ViewType {
	return q.viewType
}

func (q GetScheduleViewQuery) Target() *kernel.Date {
	return q.target
}

// ScheduleEntry is a schedule row joined with its order and customer.
type ScheduleEntry struct {
	ScheduleView
	CustomerID          kernel.UUID
	CustomerName        string
	SpecialInstructions string
	Items               []ItemView
}

type ScheduleDay struct {
	Date    kernel.Date
	Entries []ScheduleEntry
}

// ScheduleTotals counts the entries of the whole range. Completed means
// the real order was created.
type ScheduleTotals struct {
	Total     int
	Completed int
	Pending   int
	Skipped   int
}

type GetScheduleViewQueryResponse struct {
	ViewType ViewType
	Target   kernel.Date
	From     kernel.Date
	To       kernel.Date
	Days     []ScheduleDay
	Totals   ScheduleTotals
}
