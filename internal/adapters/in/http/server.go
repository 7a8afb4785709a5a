package http

import (
	"net/http"
	"strings"

	"standingorders/internal/core/application/usecases/commands"
	"standingorders/internal/core/application/usecases/queries"
	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/standingorder"
	"standingorders/internal/pkg/logger"
	"standingorders/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// SystemActor is recorded when a request carries no X-User-ID header.
const SystemActor = "system"

// Server implements ServerInterface on top of the command and query handlers.
type Server struct {
	handlers    Handlers
	horizonDays int
	metrics     *metrics.ScheduleMetrics
	log         *logger.Logger
}

func NewServer(
	handlers Handlers,
	horizonDays int,
	scheduleMetrics *metrics.ScheduleMetrics,
	log *logger.Logger,
) *Server {
	if log == nil {
		log = logger.Nop()
	}
	return &Server{
		handlers:    handlers,
		horizonDays: horizonDays,
		metrics:     scheduleMetrics,
		log:         log,
	}
}

func actor(ctx echo.Context) string {
	if a := strings.TrimSpace(ctx.Request().Header.Get(ActorHeader)); a != "" {
		return a
	}
	return SystemActor
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, message)
}

// CreateStandingOrder handles POST /api/v1/standing-orders.
func (s *Server) CreateStandingOrder(ctx echo.Context) error {
	var req NewStandingOrder
	if err := ctx.Bind(&req); err != nil {
		return s.writeError(ctx, badRequest("Invalid request body"))
	}

	days, err := standingorder.NewWeekdaySet(req.DeliveryDays)
	if err != nil {
		return s.writeError(ctx, err)
	}
	customerID, err := kernel.UUIDFromBytes(req.CustomerId[:])
	if err != nil {
		return s.writeError(ctx, err)
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateStandingOrderCommand(
		orderID,
		customerID,
		days,
		toDate(req.StartDate),
		toDate(req.EndDate),
		toItemInputs(req.Items),
		req.SpecialInstructions,
		actor(ctx),
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.handlers.CreateStandingOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreatedResponse{Id: orderID.Bytes()})
}

// ListStandingOrders handles GET /api/v1/standing-orders.
func (s *Server) ListStandingOrders(ctx echo.Context) error {
	resp, err := s.handlers.ListStandingOrders.Handle(ctx.Request().Context(), queries.NewListStandingOrdersQuery())
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toDashboard(resp))
}

// GetStandingOrder handles GET /api/v1/standing-orders/{id}.
func (s *Server) GetStandingOrder(ctx echo.Context, id openapi_types.UUID, params GetStandingOrderParams) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.writeError(ctx, err)
	}

	var month *kernel.Date
	if params.Month != nil && *params.Month != "" {
		m, err := kernel.ParseMonth(*params.Month)
		if err != nil {
			return s.writeError(ctx, err)
		}
		month = &m
	}

	query, err := queries.NewGetStandingOrderQuery(orderID, month)
	if err != nil {
		return s.writeError(ctx, err)
	}

	resp, err := s.handlers.GetStandingOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toStandingOrderDetail(resp))
}

// EditStandingOrder handles PUT /api/v1/standing-orders/{id}.
func (s *Server) EditStandingOrder(ctx echo.Context, id openapi_types.UUID) error {
	var req StandingOrderUpdate
	if err := ctx.Bind(&req); err != nil {
		return s.writeError(ctx, badRequest("Invalid request body"))
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.writeError(ctx, err)
	}
	days, err := standingorder.NewWeekdaySet(req.DeliveryDays)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewEditStandingOrderCommand(
		orderID,
		days,
		toDate(req.EndDate),
		req.SpecialInstructions,
		toItemInputs(req.Items),
		actor(ctx),
	)
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.handlers.EditStandingOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// PauseStandingOrder handles POST /api/v1/standing-orders/{id}/pause.
func (s *Server) PauseStandingOrder(ctx echo.Context, id openapi_types.UUID) error {
	var req PauseRequest
	if err := ctx.Bind(&req); err != nil {
		return s.writeError(ctx, badRequest("Invalid request body"))
	}

	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewPauseStandingOrderCommand(orderID, req.Reason, actor(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.handlers.PauseStandingOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResumeStandingOrder handles POST /api/v1/standing-orders/{id}/resume.
func (s *Server) ResumeStandingOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewResumeStandingOrderCommand(orderID, actor(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.handlers.ResumeStandingOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// EndStandingOrder handles POST /api/v1/standing-orders/{id}/end.
func (s *Server) EndStandingOrder(ctx echo.Context, id openapi_types.UUID) error {
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewEndStandingOrderCommand(orderID, actor(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.handlers.EndStandingOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GenerateSchedules handles POST /api/v1/standing-orders/{id}/schedules/generate.
func (s *Server) GenerateSchedules(ctx echo.Context, id openapi_types.UUID) error {
	horizon, err := s.bindHorizon(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	orderID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewGenerateSchedulesCommand(orderID, horizon)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.generate(ctx, cmd)
}

// GenerateAllSchedules handles POST /api/v1/standing-orders/schedules/generate.
func (s *Server) GenerateAllSchedules(ctx echo.Context) error {
	horizon, err := s.bindHorizon(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewGenerateAllSchedulesCommand(horizon)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return s.generate(ctx, cmd)
}

func (s *Server) bindHorizon(ctx echo.Context) (int, error) {
	var req GenerateRequest
	if err := ctx.Bind(&req); err != nil {
		return 0, badRequest("Invalid request body")
	}
	if req.HorizonDays == nil {
		return s.horizonDays, nil
	}
	return *req.HorizonDays, nil
}

// generate records whatever was inserted, also when some orders of a sweep
// failed.
func (s *Server) generate(ctx echo.Context, cmd commands.GenerateSchedulesCommand) error {
	created, err := s.handlers.GenerateSchedules.Handle(ctx.Request().Context(), cmd)
	s.metrics.AddGenerated("api", created)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, GeneratedResponse{Created: created})
}

// CompleteSchedule handles POST /api/v1/schedules/{id}/complete.
func (s *Server) CompleteSchedule(ctx echo.Context, id openapi_types.UUID) error {
	var req CompleteScheduleRequest
	if err := ctx.Bind(&req); err != nil {
		return s.writeError(ctx, badRequest("Invalid request body"))
	}

	scheduleID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewCompleteScheduleCommand(scheduleID, req.OrderReference, req.Notes, actor(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.handlers.CompleteSchedule.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// SkipSchedule handles POST /api/v1/schedules/{id}/skip.
func (s *Server) SkipSchedule(ctx echo.Context, id openapi_types.UUID) error {
	var req SkipScheduleRequest
	if err := ctx.Bind(&req); err != nil {
		return s.writeError(ctx, badRequest("Invalid request body"))
	}

	scheduleID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewSkipScheduleCommand(scheduleID, req.Reason, actor(ctx))
	if err != nil {
		return s.writeError(ctx, err)
	}

	if err := s.handlers.SkipSchedule.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetScheduleView handles GET /api/v1/schedule-view.
func (s *Server) GetScheduleView(ctx echo.Context, params GetScheduleViewParams) error {
	view := ""
	if params.View != nil {
		view = *params.View
	}
	viewType, err := queries.ParseViewType(view)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetScheduleViewQuery(viewType, toDate(params.Date))
	if err != nil {
		return s.writeError(ctx, err)
	}

	resp, err := s.handlers.GetScheduleView.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, toScheduleView(resp))
}
