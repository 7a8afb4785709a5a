package commands

import (
	"context"

	"standingorders/internal/core/domain/model/auditlog"
	"standingorders/internal/core/ports"
)

// PauseStandingOrderCommandHandler stops schedule generation for an order.
// Existing Pending entries are kept. Pausing a paused order changes nothing
// and writes no audit entry.
type PauseStandingOrderCommandHandler struct {
	uowFactory LifecycleUoWFactory
	clock      ports.Clock
}

func NewPauseStandingOrderCommandHandler(uowFactory LifecycleUoWFactory, clock ports.Clock) PauseStandingOrderCommandHandler {
	return PauseStandingOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *PauseStandingOrderCommandHandler) Handle(ctx context.Context, cmd PauseStandingOrderCommand) error {
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
	repo := uow.StandingOrderRepository()

	so, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	changed, err := so.Pause(now)
	if err != nil || !changed {
		return err
	}

	if err = repo.Update(ctx, so); err != nil {
		return err
	}

	details := auditlog.Details{"reason": cmd.Reason()}
	if err = appendLog(ctx, uow.AuditLogRepository(), so.ID(), auditlog.Paused, details, cmd.Actor(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
