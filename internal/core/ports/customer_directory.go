package ports

import (
	"context"

	"standingorders/internal/core/domain/model/kernel"
)

// CustomerDirectory reads customer accounts owned by another part of the
// portal.
type CustomerDirectory interface {
	// GetName returns the customer's display name or errs.ObjectNotFoundError.
	GetName(ctx context.Context, id kernel.UUID) (string, error)
}
