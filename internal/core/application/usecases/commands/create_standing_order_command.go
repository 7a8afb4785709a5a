package commands

import (
	"errors"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/standingorder"
	"standingorders/internal/pkg/errs"
	"standingorders/internal/pkg/guard"
)

var ErrCreateStandingOrderCommandIsNotConstructed = errors.New(
	"CreateStandingOrderCommand must be created via NewCreateStandingOrderCommand constructor",
)

// CreateStandingOrderCommand represents a request to set up a recurring
// delivery for a customer. The caller chooses the order identifier.
//
// Example:
//
//	days, _ := standingorder.NewWeekdaySet([]int{0, 2})
//	cmd, err := NewCreateStandingOrderCommand(kernel.NewUUID(), customerID, days, nil, nil,
//	    []ItemInput{{ProductCode: "BRD-01", ProductName: "Sourdough", Quantity: 12}}, "", "staff-1")
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateStandingOrderCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	customerID          kernel.UUID
	deliveryDays        standingorder.WeekdaySet
	startDate           *kernel.Date
	endDate             *kernel.Date
	items               []ItemInput
	specialInstructions string
	actor               string

	guard guard.ConstructorGuard
}

// NewCreateStandingOrderCommand checks the request shape. Start date may be
// nil, meaning today. Item contents are validated by the domain.
func NewCreateStandingOrderCommand(
	orderID kernel.UUID,
	customerID kernel.UUID,
	deliveryDays standingorder.WeekdaySet,
	startDate *kernel.Date,
	endDate *kernel.Date,
	items []ItemInput,
	specialInstructions string,
	actor string,
) (CreateStandingOrderCommand, error) {
	cmd := CreateStandingOrderCommand{
		startDate:           startDate,
		endDate:             endDate,
		specialInstructions: specialInstructions,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerID(customerID),
		cmd.setDeliveryDays(deliveryDays),
		cmd.setItems(items),
		validateActor(actor),
	); err != nil {
		return CreateStandingOrderCommand{}, err
	}
	cmd.actor = actor

	return cmd, nil
}

func (c CreateStandingOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateStandingOrderCommandIsNotConstructed)
}

func (c CreateStandingOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateStandingOrderCommand) CustomerID() kernel.UUID {
	return c.customerID
}

func (c CreateStandingOrderCommand) DeliveryDays() standingorder.WeekdaySet {
	return c.deliveryDays
}

func (c CreateStandingOrderCommand) StartDate() *kernel.Date {
	return c.startDate
}

func (c CreateStandingOrderCommand) EndDate() *kernel.Date {
	return c.endDate
}

func (c CreateStandingOrderCommand) Items() []ItemInput {
	return append([]ItemInput(nil), c.items...)
}

func (c CreateStandingOrderCommand) SpecialInstructions() string {
	return c.specialInstructions
}

func (c CreateStandingOrderCommand) Actor() string {
	return c.actor
}

func (c *CreateStandingOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateStandingOrderCommand) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	c.customerID = id
	return nil
}

func (c *CreateStandingOrderCommand) setDeliveryDays(days standingorder.WeekdaySet) error {
	if days.IsEmpty() {
		return errs.NewValueIsRequiredErrorWithCause("delivery days", errors.New("at least one delivery day must be selected"))
	}
	c.deliveryDays = days
	return nil
}

func (c *CreateStandingOrderCommand) setItems(items []ItemInput) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredErrorWithCause("items", errors.New("at least one product must be added"))
	}
	c.items = append([]ItemInput(nil), items...)
	return nil
}
