package commands

import (
	"errors"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/standingorder"
	"standingorders/internal/pkg/errs"
	"standingorders/internal/pkg/guard"
)

var ErrEditStandingOrderCommandIsNotConstructed = errors.New(
	"EditStandingOrderCommand must be created via NewEditStandingOrderCommand constructor",
)

// EditStandingOrderCommand carries the complete new state of an order's
// editable fields. Fields are replaced, not patched: a nil end date clears it.
type EditStandingOrderCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	deliveryDays        standingorder.WeekdaySet
	endDate             *kernel.Date
	specialInstructions string
	items               []ItemInput
	actor               string

	guard guard.ConstructorGuard
}

func NewEditStandingOrderCommand(
	orderID kernel.UUID,
	deliveryDays standingorder.WeekdaySet,
	endDate *kernel.Date,
	specialInstructions string,
	items []ItemInput,
	actor string,
) (EditStandingOrderCommand, error) {
	var problems []error
	if deliveryDays.IsEmpty() {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause(
			"delivery days", errors.New("at least one delivery day must be selected")))
	}
	if len(items) == 0 {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause(
			"items", errors.New("at least one product must be added")))
	}
	problems = append(problems, orderID.Validate(), validateActor(actor))
	if err := errors.Join(problems...); err != nil {
		return EditStandingOrderCommand{}, err
	}

	return EditStandingOrderCommand{
		orderID:             orderID,
		deliveryDays:        deliveryDays,
		endDate:             endDate,
		specialInstructions: specialInstructions,
		items:               append([]ItemInput(nil), items...),
		actor:               actor,
		guard:               guard.NewConstructorGuard(),
	}, nil
}

func (c EditStandingOrderCommand) Validate() error {
	return c.guard.Validate(ErrEditStandingOrderCommandIsNotConstructed)
}

func (c EditStandingOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c EditStandingOrderCommand) DeliveryDays() standingorder.WeekdaySet {
	return c.deliveryDays
}

func (c EditStandingOrderCommand) EndDate() *kernel.Date {
	return c.endDate
}

func (c EditStandingOrderCommand) SpecialInstructions() string {
	return c.specialInstructions
}

func (c EditStandingOrderCommand) Items() []ItemInput {
	return append([]ItemInput(nil), c.items...)
}

func (c EditStandingOrderCommand) Actor() string {
	return c.actor
}
