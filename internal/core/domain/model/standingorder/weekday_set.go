package standingorder

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"standingorders/internal/pkg/errs"
)

const (
	// Monday is the first working day index; Friday is the last.
	Monday    = 0
	Friday    = 4
	workDays  = Friday - Monday + 1
	separator = ","
)

// WeekdaySet is an immutable set of working days where 0 is Monday and 4 is
// Friday. The zero value is the empty set.
type WeekdaySet struct {
	mask uint8
}

// NewWeekdaySet builds a set from day indexes, ignoring duplicates. Every
// index outside 0..4 is reported.
func NewWeekdaySet(days []int) (WeekdaySet, error) {
	var (
		set     WeekdaySet
		invalid []error
	)
	for _, d := range days {
		if d < Monday || d > Friday {
			invalid = append(invalid, errs.NewValueIsOutOfRangeError("delivery day", d, Monday, Friday))
			continue
		}
		set.mask |= 1 << d
	}
	if len(invalid) > 0 {
		return WeekdaySet{}, errs.NewValueIsInvalidErrorWithCause("delivery days", errors.Join(invalid...))
	}
	return set, nil
}

// ParseWeekdaySet parses the stored form "0,2,4". Blank input yields the empty set.
func ParseWeekdaySet(s string) (WeekdaySet, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return WeekdaySet{}, nil
	}

	parts := strings.Split(s, separator)
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return WeekdaySet{}, errs.NewValueIsInvalidErrorWithCause("delivery days", err)
		}
		days = append(days, d)
	}
	return NewWeekdaySet(days)
}

// Contains reports whether deliveries are due on the given weekday.
// Saturday and Sunday are never contained.
func (s WeekdaySet) Contains(wd time.Weekday) bool {
	if wd < time.Monday || wd > time.Friday {
		return false
	}
	return s.mask&(1<<(int(wd)-1)) != 0
}

// Days returns the day indexes in ascending order.
func (s WeekdaySet) Days() []int {
	days := make([]int, 0, workDays)
	for d := Monday; d <= Friday; d++ {
		if s.mask&(1<<d) != 0 {
			days = append(days, d)
		}
	}
	return days
}

// Names returns the English weekday names, Monday first.
func (s WeekdaySet) Names() []string {
	days := s.Days()
	names := make([]string, 0, len(days))
	for _, d := range days {
		names = append(names, time.Weekday(d+1).String())
	}
	return names
}

func (s WeekdaySet) IsEmpty() bool {
	return s.mask == 0
}

func (s WeekdaySet) Len() int {
	return len(s.Days())
}

func (s WeekdaySet) IsEqual(other WeekdaySet) bool {
	return s.mask == other.mask
}

// String returns the stored form, e.g. "0,2".
func (s WeekdaySet) String() string {
	days := s.Days()
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, separator)
}
