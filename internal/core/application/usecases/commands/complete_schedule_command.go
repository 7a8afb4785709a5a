package commands

import (
	"errors"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/pkg/guard"
)

var ErrCompleteScheduleCommandIsNotConstructed = errors.New(
	"CompleteScheduleCommand must be created via NewCompleteScheduleCommand constructor",
)

// CompleteScheduleCommand records that staff raised the real order for a
// scheduled delivery.
type CompleteScheduleCommand struct { //nolint:recvcheck //using for validation
	scheduleID kernel.UUID
	reference  string
	notes      string
	actor      string

	guard guard.ConstructorGuard
}

func NewCompleteScheduleCommand(scheduleID kernel.UUID, reference, notes, actor string) (CompleteScheduleCommand, error) {
	if err := errors.Join(scheduleID.Validate(), validateActor(actor)); err != nil {
		return CompleteScheduleCommand{}, err
	}

	return CompleteScheduleCommand{
		scheduleID: scheduleID,
		reference:  reference,
		notes:      notes,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteScheduleCommand) Validate() error {
	return c.guard.Validate(ErrCompleteScheduleCommandIsNotConstructed)
}

func (c CompleteScheduleCommand) ScheduleID() kernel.UUID {
	return c.scheduleID
}

func (c CompleteScheduleCommand) Reference() string {
	return c.reference
}

func (c CompleteScheduleCommand) Notes() string {
	return c.notes
}

func (c CompleteScheduleCommand) Actor() string {
	return c.actor
}
