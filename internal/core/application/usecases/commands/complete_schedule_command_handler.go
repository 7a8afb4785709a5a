package commands

import (
	"context"

	"standingorders/internal/core/domain/model/auditlog"
	"standingorders/internal/core/domain/model/schedule"
	"standingorders/internal/core/ports"
)

// CompleteScheduleCommandHandler moves one Pending entry to Created. The write
// only succeeds while the stored entry is still Pending, so two staff members
// completing the same delivery cannot both win.
type CompleteScheduleCommandHandler struct {
	uowFactory ScheduleUoWFactory
	clock      ports.Clock
}

func NewCompleteScheduleCommandHandler(uowFactory ScheduleUoWFactory, clock ports.Clock) CompleteScheduleCommandHandler {
	return CompleteScheduleCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *CompleteScheduleCommandHandler) Handle(ctx context.Context, cmd CompleteScheduleCommand) error {
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
	repo := uow.ScheduleRepository()

	entry, err := repo.Get(ctx, cmd.ScheduleID())
	if err != nil {
		return err
	}

	if err = entry.Complete(cmd.Reference(), cmd.Notes(), cmd.Actor(), now); err != nil {
		return err
	}

	if err = repo.Update(ctx, entry, schedule.Pending); err != nil {
		return err
	}

	details := auditlog.Details{
		"schedule_id":     entry.ID().String(),
		"scheduled_date":  entry.ScheduledDate().String(),
		"order_reference": entry.OrderReference(),
	}
	if err = appendLog(ctx, uow.AuditLogRepository(), entry.StandingOrderID(), auditlog.ScheduleCompleted, details, cmd.Actor(), now); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
