// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"standingorders/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	StandingOrderRepoFactory interface {
		StandingOrderRepository() ports.StandingOrderRepository
	}

	ScheduleRepoFactory interface {
		ScheduleRepository() ports.ScheduleRepository
	}

	AuditLogRepoFactory interface {
		AuditLogRepository() ports.AuditLogRepository
	}

	CustomerDirectoryFactory interface {
		CustomerDirectory() ports.CustomerDirectory
	}

	// LifecycleUoW covers commands that change a standing order, its
	// schedules and its audit trail in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   so, err := uow.StandingOrderRepository().GetForUpdate(ctx, id)
	//   // ... mutate, log, regenerate
	//
	//   err = uow.Commit(ctx)
	LifecycleUoW interface {
		TxManager
		StandingOrderRepoFactory
		ScheduleRepoFactory
		AuditLogRepoFactory
		CustomerDirectoryFactory
	}

	LifecycleUoWFactory interface {
		Create() LifecycleUoW
	}

	// ScheduleUoW covers commands that change a single schedule entry.
	ScheduleUoW interface {
		TxManager
		ScheduleRepoFactory
		AuditLogRepoFactory
	}

	ScheduleUoWFactory interface {
		Create() ScheduleUoW
	}

	// GenerationUoW covers schedule generation, which reads orders and
	// inserts schedule entries only.
	GenerationUoW interface {
		TxManager
		StandingOrderRepoFactory
		ScheduleRepoFactory
	}

	GenerationUoWFactory interface {
		Create() GenerationUoW
	}
)
