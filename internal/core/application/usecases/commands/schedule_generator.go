package commands

import (
	"context"
	"fmt"
	"time"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/schedule"
	"standingorders/internal/core/domain/model/standingorder"
	"standingorders/internal/core/domain/services"
	"standingorders/internal/core/ports"
)

// ScheduleGenerator materializes planned delivery dates as Pending schedule
// entries. Generation is idempotent: dates that already have an entry, in any
// status, are left alone, so running it again or concurrently never creates
// duplicates.
type ScheduleGenerator struct {
	planner services.SchedulePlanner
}

func NewScheduleGenerator(planner services.SchedulePlanner) ScheduleGenerator {
	return ScheduleGenerator{planner: planner}
}

// Generate inserts the missing entries of the order's horizon and returns how
// many rows were actually inserted. Orders that are not active yield 0.
func (g ScheduleGenerator) Generate(
	ctx context.Context,
	repo ports.ScheduleRepository,
	so *standingorder.StandingOrder,
	now time.Time,
	horizonDays int,
) (int, error) {
	dates, err := g.planner.Plan(so, kernel.DateOf(now), horizonDays)
	if err != nil {
		return 0, err
	}

	inserted := 0
	for _, d := range dates {
		entry, err := schedule.NewPendingSchedule(kernel.NewUUID(), so.ID(), d, now)
		if err != nil {
			return inserted, err
		}

		ok, err := repo.AddIfAbsent(ctx, entry)
		if err != nil {
			return inserted, fmt.Errorf("add schedule %s for order %s: %w", d, so.ID(), err)
		}
		if ok {
			inserted++
		}
	}

	return inserted, nil
}
