package commands

import (
	"context"

	"standingorders/internal/core/domain/model/auditlog"
	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/ports"
)

// ResumeStandingOrderCommandHandler reactivates a paused order and backfills
// its horizon. Future pending entries are rebuilt so that days edited while
// paused take effect. Resuming an active order writes no audit entry but
// still runs the generator.
type ResumeStandingOrderCommandHandler struct {
	uowFactory  LifecycleUoWFactory
	generator   ScheduleGenerator
	clock       ports.Clock
	horizonDays int
}

func NewResumeStandingOrderCommandHandler(
	uowFactory LifecycleUoWFactory,
	generator ScheduleGenerator,
	clock ports.Clock,
	horizonDays int,
) ResumeStandingOrderCommandHandler {
	return ResumeStandingOrderCommandHandler{
		uowFactory:  uowFactory,
		generator:   generator,
		clock:       clock,
		horizonDays: horizonDays,
	}
}

func (h *ResumeStandingOrderCommandHandler) Handle(ctx context.Context, cmd ResumeStandingOrderCommand) error {
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

	changed, err := so.Resume(now)
	if err != nil {
		return err
	}

	schedules := uow.ScheduleRepository()

	if changed {
		if err = repo.Update(ctx, so); err != nil {
			return err
		}
		if err = appendLog(ctx, uow.AuditLogRepository(), so.ID(), auditlog.Resumed, nil, cmd.Actor(), now); err != nil {
			return err
		}
		if _, err = schedules.DeletePendingAfter(ctx, so.ID(), kernel.DateOf(now)); err != nil {
			return err
		}
	}

	if _, err = h.generator.Generate(ctx, schedules, so, now, h.horizonDays); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
