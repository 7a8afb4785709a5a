package commands

import (
	"errors"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/pkg/guard"
)

var ErrEndStandingOrderCommandIsNotConstructed = errors.New(
	"EndStandingOrderCommand must be created via NewEndStandingOrderCommand constructor",
)

type EndStandingOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	actor   string

	guard guard.ConstructorGuard
}

func NewEndStandingOrderCommand(orderID kernel.UUID, actor string) (EndStandingOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), validateActor(actor)); err != nil {
		return EndStandingOrderCommand{}, err
	}

	return EndStandingOrderCommand{
		orderID: orderID,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c EndStandingOrderCommand) Validate() error {
	return c.guard.Validate(ErrEndStandingOrderCommandIsNotConstructed)
}

func (c EndStandingOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c EndStandingOrderCommand) Actor() string {
	return c.actor
}
