// Package auditlog provides the append-only trail of lifecycle changes made to
// standing orders and their schedules.
package auditlog

import (
	"errors"
	"fmt"
	"maps"
	"strings"
	"time"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/pkg/errs"
	"standingorders/internal/pkg/guard"
)

// ActionType names the change an entry records.
type ActionType string

const (
	Created           ActionType = "created"
	Modified          ActionType = "modified"
	Paused            ActionType = "paused"
	Resumed           ActionType = "resumed"
	Ended             ActionType = "ended"
	ScheduleCompleted ActionType = "schedule_completed"
	ScheduleSkipped   ActionType = "schedule_skipped"
)

func (a ActionType) Validate() error {
	switch a {
	case Created, Modified, Paused, Resumed, Ended, ScheduleCompleted, ScheduleSkipped:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("action type", fmt.Errorf("%q is not a known action", string(a)))
	}
}

func (a ActionType) String() string {
	return string(a)
}

// Details is the JSON object stored with an entry. For modifications every
// changed field maps to a {"old": ..., "new": ...} pair.
type Details map[string]any

// Change builds the before/after pair used by modification entries.
func Change(oldValue, newValue any) map[string]any {
	return map[string]any{"old": oldValue, "new": newValue}
}

var ErrEntryIsNotConstructed = errors.New("Entry must be created via NewEntry constructor")

type Entry struct {
	id              kernel.UUID
	standingOrderID kernel.UUID
	actionType      ActionType
	details         Details
	performedBy     string
	performedAt     time.Time

	guard guard.ConstructorGuard
}

func NewEntry(
	id, standingOrderID kernel.UUID,
	actionType ActionType,
	details Details,
	performedBy string,
	performedAt time.Time,
) (*Entry, error) {
	e := &Entry{
		details:     maps.Clone(details),
		performedAt: performedAt,
		guard:       guard.NewConstructorGuard(),
	}
	if e.details == nil {
		e.details = Details{}
	}

	if err := errors.Join(
		e.setID(id),
		e.setStandingOrderID(standingOrderID),
		e.setActionType(actionType),
		e.setPerformedBy(performedBy),
	); err != nil {
		return nil, err
	}

	return e, nil
}

func (e *Entry) Validate() error {
	if e == nil {
		return ErrEntryIsNotConstructed
	}
	return e.guard.Validate(ErrEntryIsNotConstructed)
}

func (e *Entry) ID() kernel.UUID {
	return e.id
}

func (e *Entry) StandingOrderID() kernel.UUID {
	return e.standingOrderID
}

func (e *Entry) ActionType() ActionType {
	return e.actionType
}

func (e *Entry) Details() Details {
	return maps.Clone(e.details)
}

func (e *Entry) PerformedBy() string {
	return e.performedBy
}

func (e *Entry) PerformedAt() time.Time {
	return e.performedAt
}

func (e *Entry) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	e.id = id
	return nil
}

func (e *Entry) setStandingOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("standing order id", err)
	}
	e.standingOrderID = id
	return nil
}

func (e *Entry) setActionType(a ActionType) error {
	if err := a.Validate(); err != nil {
		return err
	}
	e.actionType = a
	return nil
}

func (e *Entry) setPerformedBy(actor string) error {
	if strings.TrimSpace(actor) == "" {
		return errs.NewValueIsRequiredError("performed by")
	}
	e.performedBy = actor
	return nil
}
