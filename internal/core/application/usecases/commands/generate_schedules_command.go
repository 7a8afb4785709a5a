package commands

import (
	"errors"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/services"
	"standingorders/internal/pkg/guard"
)

var ErrGenerateSchedulesCommandIsNotConstructed = errors.New(
	"GenerateSchedulesCommand must be created via NewGenerateSchedulesCommand or NewGenerateAllSchedulesCommand",
)

// GenerateSchedulesCommand asks for the horizon of one order, or of every
// active order when no order is given.
type GenerateSchedulesCommand struct { //nolint:recvcheck //using for validation
	orderID     *kernel.UUID
	horizonDays int

	guard guard.ConstructorGuard
}

func NewGenerateSchedulesCommand(orderID kernel.UUID, horizonDays int) (GenerateSchedulesCommand, error) {
	if err := errors.Join(orderID.Validate(), services.ValidateHorizon(horizonDays)); err != nil {
		return GenerateSchedulesCommand{}, err
	}

	return GenerateSchedulesCommand{
		orderID:     &orderID,
		horizonDays: horizonDays,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func NewGenerateAllSchedulesCommand(horizonDays int) (GenerateSchedulesCommand, error) {
	if err := services.ValidateHorizon(horizonDays); err != nil {
		return GenerateSchedulesCommand{}, err
	}

	return GenerateSchedulesCommand{
		horizonDays: horizonDays,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c GenerateSchedulesCommand) Validate() error {
	return c.guard.Validate(ErrGenerateSchedulesCommandIsNotConstructed)
}

// OrderID returns nil when the command targets every active order.
func (c GenerateSchedulesCommand) OrderID() *kernel.UUID {
	return c.orderID
}

func (c GenerateSchedulesCommand) HorizonDays() int {
	return c.horizonDays
}
