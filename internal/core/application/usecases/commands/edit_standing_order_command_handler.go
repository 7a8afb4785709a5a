package commands

import (
	"context"
	"time"

	"standingorders/internal/core/domain/model/auditlog"
	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/standingorder"
	"standingorders/internal/core/ports"
)

// EditStandingOrderCommandHandler replaces the editable fields of an order and
// records a "modified" entry with an old/new pair for each changed field.
// Items are always recorded.
//
// When the weekday pattern of an active order changes, Pending entries dated
// after today are removed and the horizon is generated again. Entries for
// today and earlier, and every Created or Skipped entry, are kept.
type EditStandingOrderCommandHandler struct {
	uowFactory  LifecycleUoWFactory
	generator   ScheduleGenerator
	clock       ports.Clock
	horizonDays int
}

func NewEditStandingOrderCommandHandler(
	uowFactory LifecycleUoWFactory,
	generator ScheduleGenerator,
	clock ports.Clock,
	horizonDays int,
) EditStandingOrderCommandHandler {
	return EditStandingOrderCommandHandler{
		uowFactory:  uowFactory,
		generator:   generator,
		clock:       clock,
		horizonDays: horizonDays,
	}
}

func (h *EditStandingOrderCommandHandler) Handle(ctx context.Context, cmd EditStandingOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	items, err := buildItems(cmd.Items())
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

	now := h.clock.Now()
	today := kernel.DateOf(now)
	repo := uow.StandingOrderRepository()

	so, err := repo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	changes, daysChanged, endChanged, err := applyEdit(so, cmd, items, today, now)
	if err != nil {
		return err
	}

	if err = repo.Update(ctx, so); err != nil {
		return err
	}

	if err = appendLog(ctx, uow.AuditLogRepository(), so.ID(), auditlog.Modified, changes, cmd.Actor(), now); err != nil {
		return err
	}

	if so.CanGenerate() && (daysChanged || endChanged) {
		schedules := uow.ScheduleRepository()
		if daysChanged {
			if _, err = schedules.DeletePendingAfter(ctx, so.ID(), today); err != nil {
				return err
			}
		}
		if _, err = h.generator.Generate(ctx, schedules, so, now, h.horizonDays); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

func applyEdit(
	so *standingorder.StandingOrder,
	cmd EditStandingOrderCommand,
	items []standingorder.Item,
	today kernel.Date,
	now time.Time,
) (changes auditlog.Details, daysChanged, endChanged bool, err error) {
	changes = auditlog.Details{}

	oldDays := so.DeliveryDays()
	if daysChanged, err = so.EditDeliveryDays(cmd.DeliveryDays(), now); err != nil {
		return nil, false, false, err
	}
	if daysChanged {
		changes["delivery_days"] = auditlog.Change(oldDays.String(), so.DeliveryDays().String())
	}

	oldEnd := so.EndDate()
	if !sameEndDate(oldEnd, cmd.EndDate()) {
		if err = validateEndDate(cmd.EndDate(), today); err != nil {
			return nil, false, false, err
		}
	}
	if endChanged, err = so.ChangeEndDate(cmd.EndDate(), now); err != nil {
		return nil, false, false, err
	}
	if endChanged {
		changes["end_date"] = auditlog.Change(dateDetail(oldEnd), dateDetail(so.EndDate()))
	}

	oldInstructions := so.SpecialInstructions()
	instructionsChanged, err := so.ChangeSpecialInstructions(cmd.SpecialInstructions(), now)
	if err != nil {
		return nil, false, false, err
	}
	if instructionsChanged {
		changes["special_instructions"] = auditlog.Change(oldInstructions, so.SpecialInstructions())
	}

	oldItems := so.Items()
	if _, err = so.ReplaceItems(items, now); err != nil {
		return nil, false, false, err
	}
	changes["items"] = auditlog.Change(itemsDetail(oldItems), itemsDetail(so.Items()))

	return changes, daysChanged, endChanged, nil
}

func sameEndDate(a, b *kernel.Date) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
