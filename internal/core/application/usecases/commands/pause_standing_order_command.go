package commands

import (
	"errors"
	"strings"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/pkg/guard"
)

var ErrPauseStandingOrderCommandIsNotConstructed = errors.New(
	"PauseStandingOrderCommand must be created via NewPauseStandingOrderCommand constructor",
)

type PauseStandingOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	reason  string
	actor   string

	guard guard.ConstructorGuard
}

func NewPauseStandingOrderCommand(orderID kernel.UUID, reason, actor string) (PauseStandingOrderCommand, error) {
	if err := errors.Join(orderID.Validate(), validateActor(actor)); err != nil {
		return PauseStandingOrderCommand{}, err
	}

	return PauseStandingOrderCommand{
		orderID: orderID,
		reason:  strings.TrimSpace(reason),
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c PauseStandingOrderCommand) Validate() error {
	return c.guard.Validate(ErrPauseStandingOrderCommandIsNotConstructed)
}

func (c PauseStandingOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c PauseStandingOrderCommand) Reason() string {
	return c.reason
}

func (c PauseStandingOrderCommand) Actor() string {
	return c.actor
}
