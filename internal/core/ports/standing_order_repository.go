// Package ports defines the contracts between the standing order core and its
// infrastructure: repositories, the unit of work, the customer directory and
// the clock.
package ports

import (
	"context"

	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/standingorder"
)

// StandingOrderRepository defines the persistence contract for standing order
// aggregates, items included.
type StandingOrderRepository interface {
	// Add persists a new order together with its items.
	Add(ctx context.Context, aggregate *standingorder.StandingOrder) error

	// Update persists the order's fields and replaces its items.
	Update(ctx context.Context, aggregate *standingorder.StandingOrder) error

	// Get retrieves an order by identifier. A missing order yields
	// errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*standingorder.StandingOrder, error)

	// GetForUpdate is Get plus a row lock held until the transaction ends, so
	// that lifecycle changes on the same order are serialized.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*standingorder.StandingOrder, error)

	// GetAllActive retrieves every order currently in Active status.
	GetAllActive(ctx context.Context) ([]*standingorder.StandingOrder, error)
}
