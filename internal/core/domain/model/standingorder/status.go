package standingorder

import (
	"fmt"
	"strings"

	"standingorders/internal/pkg/errs"
)

const entityName = "standing order"

// Status is the lifecycle state of a standing order. It is persisted as its
// integer value.
type Status int

const (
	// Unknown catches uninitialized values.
	Unknown Status = iota

	// Active orders generate schedules.
	Active

	// Paused orders keep their existing schedules but generate no new ones.
	Paused

	// Ended is terminal.
	Ended
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown: "unknown",
		Active:  "active",
		Paused:  "paused",
		Ended:   "ended",
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
	if s < Active || s > Ended {
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

func (s Status) IsTerminal() bool {
	return s == Ended
}

// Pause moves Active to Paused. Pausing a paused order keeps it paused.
func (s Status) Pause() (Status, error) {
	switch s {
	case Active, Paused:
		return Paused, nil
	default:
		return s, errs.NewInvalidStateError(entityName, s.String(), "pause")
	}
}

// Resume moves Paused to Active. Resuming an active order keeps it active.
func (s Status) Resume() (Status, error) {
	switch s {
	case Active, Paused:
		return Active, nil
	default:
		return s, errs.NewInvalidStateError(entityName, s.String(), "resume")
	}
}

func (s Status) End() (Status, error) {
	switch s {
	case Active, Paused:
		return Ended, nil
	default:
		return s, errs.NewInvalidStateError(entityName, s.String(), "end")
	}
}

// ValidateEdit rejects modifications of ended orders.
func (s Status) ValidateEdit() error {
	if s != Active && s != Paused {
		return errs.NewInvalidStateError(entityName, s.String(), "edit")
	}
	return nil
}
