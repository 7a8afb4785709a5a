package queries

import (
	"fmt"
	"strings"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/pkg/errs"
)

// ViewType selects the calendar range of a schedule view.
type ViewType string

const (
	DayView   ViewType = "day"
	WeekView  ViewType = "week"
	MonthView ViewType = "month"
)

// ParseViewType defaults an empty value to the month view.
func ParseViewType(s string) (ViewType, error) {
	switch v := ViewType(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return MonthView, nil
	case DayView, WeekView, MonthView:
		return v, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("view", fmt.Errorf("%q is not one of day, week, month", s))
	}
}

func (v ViewType) Validate() error {
	switch v {
	case DayView, WeekView, MonthView:
		return nil
	default:
		return errs.NewValueIsInvalidError("view")
	}
}

// Bounds returns the inclusive range the view covers around target: the day
// itself, its ISO week (Monday to Sunday) or its calendar month.
func (v ViewType) Bounds(target kernel.Date) (kernel.Date, kernel.Date) {
	switch v {
	case DayView:
		return target, target
	case WeekView:
		start := target.StartOfISOWeek()
		return start, start.AddDays(6)
	default:
		return target.StartOfMonth(), target.EndOfMonth()
	}
}
