package commands

import (
	"errors"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/pkg/guard"
)

var ErrResumeStandingOrderCommandIsNotConstructed = errors.New(
	"ResumeStandingOrderCommand must be created via NewResumeStandingOrderCommand constructor",
)

type ResumeStandingOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string

	guard guard.ConstructorGuard
}

func NewResumeStandingOrderCommand(orderID kernel.UUID, actor string) (ResumeStandingOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), validateActor(actor)); err != nil {
		return ResumeStandingOrderCommand{}, err
	}

	return ResumeStandingOrderCommand{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ResumeStandingOrderCommand) Validate() error {
	return c.guard.Validate(ErrResumeStandingOrderCommandIsNotConstructed)
}

func (c ResumeStandingOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ResumeStandingOrderCommand) Actor() string {
	return c.actor
}
