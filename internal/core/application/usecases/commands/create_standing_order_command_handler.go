package commands

import (
	"context"

	"standingorders/internal/core/domain/model/auditlog"
	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/standingorder"
	"standingorders/internal/core/ports"
)

// CreateStandingOrderCommandHandler persists a new Active order, writes its
// "created" audit entry and generates the first horizon of schedules, all in
// one transaction.
type CreateStandingOrderCommandHandler struct {
	uowFactory  LifecycleUoWFactory
	generator   ScheduleGenerator
	clock       ports.Clock
	horizonDays int
}

func NewCreateStandingOrderCommandHandler(
	uowFactory LifecycleUoWFactory,
	generator ScheduleGenerator,
	clock ports.Clock,
	horizonDays int,
) CreateStandingOrderCommandHandler {
	return CreateStandingOrderCommandHandler{
		uowFactory:  uowFactory,
		generator:   generator,
		clock:       clock,
		horizonDays: horizonDays,
	}
}

func (h *CreateStandingOrderCommandHandler) Handle(ctx context.Context, cmd CreateStandingOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := h.clock.Now()
	today := kernel.DateOf(now)

	startDate := today
	if cmd.StartDate() != nil {
		startDate = *cmd.StartDate()
	}
	if err := validateEndDate(cmd.EndDate(), today); err != nil {
		return err
	}

	items, err := buildItems(cmd.Items())
	if err != nil {
		return err
	}

	so, err := standingorder.NewStandingOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.DeliveryDays(),
		startDate,
		cmd.EndDate(),
		items,
		cmd.SpecialInstructions(),
		cmd.Actor(),
		now,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	customerName, err := uow.CustomerDirectory().GetName(ctx, cmd.CustomerID())
	if err != nil {
		return err
	}

	if err = uow.StandingOrderRepository().Add(ctx, so); err != nil {
		return err
	}

	details := auditlog.Details{
		"customer":      customerName,
		"items_count":   len(items),
		"delivery_days": so.DeliveryDays().Names(),
	}
	if err = appendLog(ctx, uow.AuditLogRepository(), so.ID(), auditlog.Created, details, cmd.Actor(), now); err != nil {
		return err
	}

	if _, err = h.generator.Generate(ctx, uow.ScheduleRepository(), so, now, h.horizonDays); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
