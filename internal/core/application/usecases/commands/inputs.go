package commands

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"standingorders/internal/core/domain/model/auditlog"
	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/standingorder"
	"standingorders/internal/core/ports"
	"standingorders/internal/pkg/errs"
)

// ItemInput is a product line as supplied by the caller of a command.
type ItemInput struct {
	ProductCode  string
	ProductName  string
	Quantity     int
	UnitType     string
	SpecialNotes string
}

func buildItems(inputs []ItemInput) ([]standingorder.Item, error) {
	items := make([]standingorder.Item, 0, len(inputs))
	var problems []error
	for n, in := range inputs {
		item, err := standingorder.NewItem(kernel.NewUUID(), in.ProductCode, in.ProductName, in.Quantity, in.UnitType, in.SpecialNotes)
		if err != nil {
			problems = append(problems, fmt.Errorf("product %d: %w", n+1, err))
			continue
		}
		items = append(items, item)
	}
	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}
	return items, nil
}

func itemsDetail(items []standingorder.Item) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		out = append(out, map[string]any{
			"product_code": item.ProductCode(),
			"product_name": item.ProductName(),
			"quantity":     item.Quantity(),
			"unit_type":    item.UnitType(),
		})
	}
	return out
}

func dateDetail(d *kernel.Date) any {
	if d == nil {
		return nil
	}
	return d.String()
}

// MaxActorLength matches the width of the actor columns.
const MaxActorLength = 100

func validateActor(actor string) error {
	if actor == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	if n := utf8.RuneCountInString(actor); n > MaxActorLength {
		return errs.NewValueIsOutOfRangeError("actor length", n, 1, MaxActorLength)
	}
	return nil
}

// validateEndDate rejects end dates that already passed.
func validateEndDate(end *kernel.Date, today kernel.Date) error {
	if end != nil && end.Before(today) {
		return errs.NewValueIsInvalidErrorWithCause(
			"end date",
			fmt.Errorf("%s is in the past", end),
		)
	}
	return nil
}

func appendLog(
	ctx context.Context,
	repo ports.AuditLogRepository,
	orderID kernel.UUID,
	action auditlog.ActionType,
	details auditlog.Details,
	actor string,
	now time.Time,
) error {
	entry, err := auditlog.NewEntry(kernel.NewUUID(), orderID, action, details, actor, now)
	if err != nil {
		return err
	}
	return repo.Append(ctx, entry)
}
