package commands

import (
	"context"

	"standingorders/internal/core/domain/model/auditlog"
	"standingorders/internal/core/domain/model/schedule"
	"standingorders/internal/core/ports"
)

type SkipScheduleCommandHandler struct {
	uowFactory ScheduleUoWFactory
	clock      ports.Clock
}

func NewSkipScheduleCommandHandler(uowFactory ScheduleUoWFactory, clock ports.Clock) SkipScheduleCommandHandler {
	return SkipScheduleCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *SkipScheduleCommandHandler) Handle(ctx context.Context, cmd SkipScheduleCommand) error {
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

	repo := uow.ScheduleRepository()

	entry, err := repo.Get(ctx, cmd.ScheduleID())
	if err != nil {
		return err
	}

	if err = entry.Skip(cmd.Reason()); err != nil {
		return err
	}

	if err = repo.Update(ctx, entry, schedule.Pending); err != nil {
		return err
	}

	details := auditlog.Details{
		"schedule_id":    entry.ID().String(),
		"scheduled_date": entry.ScheduledDate().String(),
		"reason":         entry.Notes(),
	}
	if err = appendLog(ctx, uow.AuditLogRepository(), entry.StandingOrderID(), auditlog.ScheduleSkipped, details, cmd.Actor(), h.clock.Now()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
