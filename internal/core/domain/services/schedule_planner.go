package services

import (
	"fmt"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/standingorder"
	"standingorders/internal/pkg/errs"
)

const (
	DefaultHorizonDays = 30
	MinHorizonDays     = 1
	MaxHorizonDays     = 366
)

// SchedulePlanner computes which calendar days an order delivers on. It is a
// pure computation; storage decides which of the dates are new.
type SchedulePlanner struct{}

func NewSchedulePlanner() SchedulePlanner {
	return SchedulePlanner{}
}

// ValidateHorizon checks that a horizon length is within 1..366 days.
func ValidateHorizon(days int) error {
	if days < MinHorizonDays || days > MaxHorizonDays {
		return errs.NewValueIsOutOfRangeError("horizon days", days, MinHorizonDays, MaxHorizonDays)
	}
	return nil
}

// Plan returns, in ascending order, the dates from max(start, today) through
// min(today+horizonDays-1, end) whose weekday is in the order's pattern.
// Orders that are not active yield no dates.
func (SchedulePlanner) Plan(so *standingorder.StandingOrder, today kernel.Date, horizonDays int) ([]kernel.Date, error) {
	if err := so.Validate(); err != nil {
		return nil, err
	}
	if err := today.Validate(); err != nil {
		return nil, fmt.Errorf("plan schedules: %w", err)
	}
	if err := ValidateHorizon(horizonDays); err != nil {
		return nil, err
	}
	if !so.CanGenerate() {
		return nil, nil
	}

	from := kernel.MaxDate(so.StartDate(), today)
	to := today.AddDays(horizonDays - 1)
	if end := so.EndDate(); end != nil {
		to = kernel.MinDate(to, *end)
	}

	days := so.DeliveryDays()
	var dates []kernel.Date
	for d := from; !d.After(to); d = d.AddDays(1) {
		if days.Contains(d.Weekday()) {
			dates = append(dates, d)
		}
	}
	return dates, nil
}
