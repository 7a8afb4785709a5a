package schedule

import (
	"fmt"
	"strings"

	"standingorders/internal/pkg/errs"
)

// Status of a single dated delivery.
type Status int

const (
	Unknown Status = iota

	// Pending deliveries still need an order to be raised.
	Pending

	// Created means staff raised the real order for the day.
	Created

	// Skipped deliveries will not happen.
	Skipped
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "unknown",
		Pending: "pending",
		Created: "created",
		Skipped: "skipped",
	}
}

// ParseStatus accepts the lowercase names returned by String.
func ParseStatus(s string) (Status, error) {
	for st, name := range getStatusStrings() {
		if st != Unknown && name == strings.ToLower(strings.TrimSpace(s)) {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) Validate() error {
	if s < Pending || s > Skipped {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) Complete() (Status, error) {
	if s != Pending {
		return s, errs.NewInvalidStateError(entityName, s.String(), "complete")
	}
	return Created, nil
}

func (s Status) Skip() (Status, error) {
	if s != Pending {
		return s, errs.NewInvalidStateError(entityName, s.String(), "skip")
	}
	return Skipped, nil
}
