package ports

import "time"

// Clock supplies the current instant in the business time zone. The calendar
// day of Now is "today" for every date rule.
type Clock interface {
	Now() time.Time
}
