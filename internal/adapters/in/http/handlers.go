package http

import (
	"context"

	"standingorders/internal/core/application/usecases/commands"
	"standingorders/internal/core/application/usecases/queries"
)

type CreateStandingOrderHandler interface {
	Handle(ctx context.Context, cmd commands.CreateStandingOrderCommand) error
}

type EditStandingOrderHandler interface {
	Handle(ctx context.Context, cmd commands.EditStandingOrderCommand) error
}

type PauseStandingOrderHandler interface {
	Handle(ctx context.Context, cmd commands.PauseStandingOrderCommand) error
}

type ResumeStandingOrderHandler interface {
	Handle(ctx context.Context, cmd commands.ResumeStandingOrderCommand) error
}

type EndStandingOrderHandler interface {
	Handle(ctx context.Context, cmd commands.EndStandingOrderCommand) error
}

type GenerateSchedulesHandler interface {
	Handle(ctx context.Context, cmd commands.GenerateSchedulesCommand) (int, error)
}

type CompleteScheduleHandler interface {
	Handle(ctx context.Context, cmd commands.CompleteScheduleCommand) error
}

type SkipScheduleHandler interface {
	Handle(ctx context.Context, cmd commands.SkipScheduleCommand) error
}

type GetScheduleViewHandler interface {
	Handle(ctx context.Context, query queries.GetScheduleViewQuery) (queries.GetScheduleViewQueryResponse, error)
}

type GetStandingOrderHandler interface {
	Handle(ctx context.Context, query queries.GetStandingOrderQuery) (queries.GetStandingOrderQueryResponse, error)
}

type ListStandingOrdersHandler interface {
	Handle(ctx context.Context, query queries.ListStandingOrdersQuery) (queries.ListStandingOrdersQueryResponse, error)
}

// Handlers groups the use cases the API exposes.
type Handlers struct {
	CreateStandingOrder CreateStandingOrderHandler
	EditStandingOrder   EditStandingOrderHandler
	PauseStandingOrder  PauseStandingOrderHandler
	ResumeStandingOrder ResumeStandingOrderHandler
	EndStandingOrder    EndStandingOrderHandler
	GenerateSchedules   GenerateSchedulesHandler
	CompleteSchedule    CompleteScheduleHandler
	SkipSchedule        SkipScheduleHandler
	GetScheduleView     GetScheduleViewHandler
	GetStandingOrder    GetStandingOrderHandler
	ListStandingOrders  ListStandingOrdersHandler
}
