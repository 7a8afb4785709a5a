package commands

import (
	"context"

	"standingorders/internal/core/domain/model/auditlog"
	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/schedule"
	"standingorders/internal/core/ports"
)

// EndStandingOrderCommandHandler terminates an order today. Pending entries
// dated after today become Skipped; today's and earlier entries keep their
// status.
type EndStandingOrderCommandHandler struct {
	uowFactory LifecycleUoWFactory
	clock      ports.Clock
}

func NewEndStandingOrderCommandHandler(uowFactory LifecycleUoWFactory, clock ports.Clock) EndStandingOrderCommandHandler {
	return EndStandingOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *EndStandingOrderCommandHandler) Handle(ctx context.Context, cmd EndStandingOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	now := h.clock.Now()
	today := kernel.DateOf(now)
	repo := uow.StandingOrderRepository()

	so, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = so.End(today, now); err != nil {
		return err
	}

	if err = repo.Update(ctx, so); err != nil {
		return err
	}

	skipped, err := uow.ScheduleRepository().SkipPendingAfter(ctx, so.ID(), today, schedule.EndedNote)
	if err != nil {
		return err
	}

	details := auditlog.Details{
		"end_date":      today.String(),
		"skipped_count": skipped,
	}
	if err = appendLog(ctx, uow.AuditLogRepository(), so.ID(), auditlog.Ended, details, cmd.Actor(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
