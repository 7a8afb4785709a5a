// Package clock provides the wall clock of the business time zone.
package clock

import (
	"fmt"
	"time"
)

// Location reads Now in a fixed time zone, so that the calendar day of Now is
// the business "today".
type Location struct {
	loc *time.Location
}

// New loads the named IANA zone. An empty name means UTC.
func New(zone string) (*Location, error) {
	if zone == "" {
		return &Location{loc: time.UTC}, nil
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", zone, err)
	}
	return &Location{loc: loc}, nil
}

func (c *Location) Now() time.Time {
	return time.Now().In(c.loc)
}

// Zone is the configured location.
func (c *Location) Zone() *time.Location {
	return c.loc
}
