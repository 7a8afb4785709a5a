package commands

import (
	"context"
	"fmt"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/standingorder"
	"standingorders/internal/core/ports"
	"standingorders/internal/pkg/errs"

	"go.uber.org/multierr"
)

// GenerateSchedulesCommandHandler fills the schedule horizon on demand.
//
// For a single order the order row is locked for the transaction; an ended
// order is rejected and a paused one yields 0. For all orders each active
// order is generated in its own transaction, so one failing order does not
// undo the others; failures are returned together.
type GenerateSchedulesCommandHandler struct {
	uowFactory GenerationUoWFactory
	generator  ScheduleGenerator
	clock      ports.Clock
}

func NewGenerateSchedulesCommandHandler(
	uowFactory GenerationUoWFactory,
	generator ScheduleGenerator,
	clock ports.Clock,
) GenerateSchedulesCommandHandler {
	return GenerateSchedulesCommandHandler{
		uowFactory: uowFactory,
		generator:  generator,
		clock:      clock,
	}
}

// Handle returns the number of schedule entries inserted.
func (h *GenerateSchedulesCommandHandler) Handle(ctx context.Context, cmd GenerateSchedulesCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	if id := cmd.OrderID(); id != nil {
		return h.generateOne(ctx, *id, cmd.HorizonDays(), true)
	}
	return h.generateAll(ctx, cmd.HorizonDays())
}

func (h *GenerateSchedulesCommandHandler) generateAll(ctx context.Context, horizonDays int) (int, error) {
	orders, err := h.activeOrders(ctx)
	if err != nil {
		return 0, err
	}

	total := 0
	var result error
	for _, so := range orders {
		if ctx.Err() != nil {
			return total, multierr.Append(result, ctx.Err())
		}

		n, genErr := h.generateOne(ctx, so.ID(), horizonDays, false)
		if genErr != nil {
			result = multierr.Append(result, fmt.Errorf("order %s: %w", so.ID(), genErr))
			continue
		}
		total += n
	}

	return total, result
}

func (h *GenerateSchedulesCommandHandler) activeOrders(ctx context.Context) ([]*standingorder.StandingOrder, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders, err := uow.StandingOrderRepository().GetAllActive(ctx)
	if err != nil {
		return nil, err
	}

	return orders, uow.Commit(ctx)
}

// generateOne re-reads the order under lock so that a concurrent pause or end
// is respected. strict rejects ended orders; the sweep skips them instead.
func (h *GenerateSchedulesCommandHandler) generateOne(
	ctx context.Context,
	id kernel.UUID,
	horizonDays int,
	strict bool,
) (int, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	so, err := uow.StandingOrderRepository().GetForUpdate(ctx, id)
	if err != nil {
		return 0, err
	}

	if so.Status().IsTerminal() {
		if strict {
			return 0, errs.NewInvalidStateError("standing order", so.Status().String(), "generate schedules for")
		}
		return 0, nil
	}

	n, err := h.generator.Generate(ctx, uow.ScheduleRepository(), so, h.clock.Now(), horizonDays)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return n, nil
}
