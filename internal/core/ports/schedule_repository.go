package ports

import (
	"context"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/schedule"
)

// ScheduleRepository defines the persistence contract for dated schedule
// entries. Storage guarantees at most one entry per (standing order, date).
type ScheduleRepository interface {
	// AddIfAbsent inserts the entry unless one already exists for the same
	// order and date. It reports whether a row was inserted; an existing row
	// is not an error.
	AddIfAbsent(ctx context.Context, s *schedule.Schedule) (bool, error)

	// Get retrieves an entry by identifier. A missing entry yields
	// errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*schedule.Schedule, error)

	// Update writes the entry only if its stored status still equals expected.
	// When another writer got there first it returns errs.InvalidStateError.
	Update(ctx context.Context, s *schedule.Schedule, expected schedule.Status) error

	// SkipPendingAfter marks every Pending entry of the order dated strictly
	// after the given day as Skipped with the note, returning how many changed.
	SkipPendingAfter(ctx context.Context, standingOrderID kernel.UUID, after kernel.Date, note string) (int, error)

	// DeletePendingAfter removes every Pending entry of the order dated
	// strictly after the given day, returning how many were removed.
	DeletePendingAfter(ctx context.Context, standingOrderID kernel.UUID, after kernel.Date) (int, error)
}
