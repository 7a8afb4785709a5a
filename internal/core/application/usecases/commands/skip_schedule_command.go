package commands

import (
	"errors"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/pkg/guard"
)

var ErrSkipScheduleCommandIsNotConstructed = errors.New(
	"SkipScheduleCommand must be created via NewSkipScheduleCommand constructor",
)

// SkipScheduleCommand cancels one scheduled delivery. An empty reason is
// recorded as "Manually skipped".
type SkipScheduleCommand struct { //nolint:recvcheck //using for validation
	scheduleID kernel.UUID
	reason     string
	actor      string

	guard guard.ConstructorGuard
}

func NewSkipScheduleCommand(scheduleID kernel.UUID, reason, actor string) (SkipScheduleCommand, error) {
	if err := errors.Join(scheduleID.Validate(), validateActor(actor)); err != nil {
		return SkipScheduleCommand{}, err
	}

	return SkipScheduleCommand{
		scheduleID: scheduleID,
		reason:     reason,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c SkipScheduleCommand) Validate() error {
	return c.guard.Validate(ErrSkipScheduleCommandIsNotConstructed)
}

func (c SkipScheduleCommand) ScheduleID() kernel.UUID {
	return c.scheduleID
}

func (c SkipScheduleCommand) Reason() string {
	return c.reason
}

func (c SkipScheduleCommand) Actor() string {
	return c.actor
}
