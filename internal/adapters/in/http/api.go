package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ActorHeader carries the staff member performing a change.
const ActorHeader = "X-User-ID"

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Item struct {
	ProductCode  string `json:"product_code"`
	ProductName  string `json:"product_name"`
	Quantity     int    `json:"quantity"`
	UnitType     string `json:"unit_type,omitempty"`
	SpecialNotes string `json:"special_notes,omitempty"`
}

type NewStandingOrder struct {
	CustomerId          openapi_types.UUID  `json:"customer_id"`
	DeliveryDays        []int               `json:"delivery_days"`
	StartDate           *openapi_types.Date `json:"start_date,omitempty"`
	EndDate             *openapi_types.Date `json:"end_date,omitempty"`
	SpecialInstructions string              `json:"special_instructions,omitempty"`
	Items               []Item              `json:"items"`
}

type StandingOrderUpdate struct {
	DeliveryDays        []int               `json:"delivery_days"`
	EndDate             *openapi_types.Date `json:"end_date,omitempty"`
	SpecialInstructions string              `json:"special_instructions,omitempty"`
	Items               []Item              `json:"items"`
}

type PauseRequest struct {
	Reason string `json:"reason,omitempty"`
}

type GenerateRequest struct {
	HorizonDays *int `json:"horizon_days,omitempty"`
}

type CompleteScheduleRequest struct {
	OrderReference string `json:"order_reference,omitempty"`
	Notes          string `json:"notes,omitempty"`
}

type SkipScheduleRequest struct {
	Reason string `json:"reason,omitempty"`
}

type CreatedResponse struct {
	Id openapi_types.UUID `json:"id"`
}

type GeneratedResponse struct {
	Created int `json:"created"`
}

type StandingOrder struct {
	Id                  openapi_types.UUID  `json:"id"`
	CustomerId          openapi_types.UUID  `json:"customer_id"`
	CustomerName        string              `json:"customer_name"`
	DeliveryDays        []int               `json:"delivery_days"`
	DeliveryDayNames    []string            `json:"delivery_day_names"`
	StartDate           openapi_types.Date  `json:"start_date"`
	EndDate             *openapi_types.Date `json:"end_date,omitempty"`
	Status              string              `json:"status"`
	SpecialInstructions string              `json:"special_instructions"`
	Items               []Item              `json:"items"`
}

type Schedule struct {
	Id               openapi_types.UUID `json:"id"`
	StandingOrderId  openapi_types.UUID `json:"standing_order_id"`
	ScheduledDate    openapi_types.Date `json:"scheduled_date"`
	Status           string             `json:"status"`
	OrderCreatedDate *string            `json:"order_created_date,omitempty"`
	OrderCreatedBy   string             `json:"order_created_by,omitempty"`
	OrderReference   string             `json:"order_reference,omitempty"`
	Notes            string             `json:"notes,omitempty"`
}

type LogEntry struct {
	Id          openapi_types.UUID `json:"id"`
	ActionType  string             `json:"action_type"`
	Details     map[string]any     `json:"details"`
	PerformedBy string             `json:"performed_by"`
	PerformedAt string             `json:"performed_at"`
}

type StandingOrderDetail struct {
	StandingOrder
	CreatedBy string     `json:"created_by"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
	Month     string     `json:"month"`
	Schedules []Schedule `json:"schedules"`
	Logs      []LogEntry `json:"logs"`
}

type TodayDelivery struct {
	StandingOrderId openapi_types.UUID  `json:"standing_order_id"`
	ScheduleId      *openapi_types.UUID `json:"schedule_id,omitempty"`
	CustomerName    string              `json:"customer_name"`
	Status          string              `json:"status"`
	Items           []Item              `json:"items"`
}

type Dashboard struct {
	Today           openapi_types.Date `json:"today"`
	ActiveCount     int                `json:"active_count"`
	PausedCount     int                `json:"paused_count"`
	PendingThisWeek int                `json:"pending_this_week"`
	Orders          []StandingOrder    `json:"orders"`
	TodayDeliveries []TodayDelivery    `json:"today_deliveries"`
}

type ScheduleEntry struct {
	Schedule
	CustomerId          openapi_types.UUID `json:"customer_id"`
	CustomerName        string             `json:"customer_name"`
	SpecialInstructions string             `json:"special_instructions"`
	Items               []Item             `json:"items"`
}

type ScheduleDay struct {
	Date    openapi_types.Date `json:"date"`
	Entries []ScheduleEntry    `json:"entries"`
}

type ScheduleTotals struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Skipped   int `json:"skipped"`
}

type ScheduleViewResponse struct {
	View   string             `json:"view"`
	Date   openapi_types.Date `json:"date"`
	From   openapi_types.Date `json:"from"`
	To     openapi_types.Date `json:"to"`
	Days   []ScheduleDay      `json:"days"`
	Totals ScheduleTotals     `json:"totals"`
}

type GetStandingOrderParams struct {
	Month *string `form:"month,omitempty" json:"month,omitempty"`
}

type GetScheduleViewParams struct {
	View *string             `form:"view,omitempty" json:"view,omitempty"`
	Date *openapi_types.Date `form:"date,omitempty" json:"date,omitempty"`
}

// ServerInterface lists every operation of the HTTP API.
type ServerInterface interface {
	ListStandingOrders(ctx echo.Context) error
	CreateStandingOrder(ctx echo.Context) error
	GenerateAllSchedules(ctx echo.Context) error
	GetStandingOrder(ctx echo.Context, id openapi_types.UUID, params GetStandingOrderParams) error
	EditStandingOrder(ctx echo.Context, id openapi_types.UUID) error
	PauseStandingOrder(ctx echo.Context, id openapi_types.UUID) error
	ResumeStandingOrder(ctx echo.Context, id openapi_types.UUID) error
	EndStandingOrder(ctx echo.Context, id openapi_types.UUID) error
	GenerateSchedules(ctx echo.Context, id openapi_types.UUID) error
	CompleteSchedule(ctx echo.Context, id openapi_types.UUID) error
	SkipSchedule(ctx echo.Context, id openapi_types.UUID) error
	GetScheduleView(ctx echo.Context, params GetScheduleViewParams) error
}

// ServerInterfaceWrapper binds path and query parameters before calling
// the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) ListStandingOrders(ctx echo.Context) error {
	return w.Handler.ListStandingOrders(ctx)
}

func (w *ServerInterfaceWrapper) CreateStandingOrder(ctx echo.Context) error {
	return w.Handler.CreateStandingOrder(ctx)
}

func (w *ServerInterfaceWrapper) GenerateAllSchedules(ctx echo.Context) error {
	return w.Handler.GenerateAllSchedules(ctx)
}

func (w *ServerInterfaceWrapper) GetStandingOrder(ctx echo.Context) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}

	var params GetStandingOrderParams
	if err := runtime.BindQueryParameter("form", true, false, "month", ctx.QueryParams(), &params.Month); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter month: "+err.Error())
	}

	return w.Handler.GetStandingOrder(ctx, id, params)
}

func (w *ServerInterfaceWrapper) EditStandingOrder(ctx echo.Context) error {
	return w.withID(ctx, w.Handler.EditStandingOrder)
}

func (w *ServerInterfaceWrapper) PauseStandingOrder(ctx echo.Context) error {
	return w.withID(ctx, w.Handler.PauseStandingOrder)
}

func (w *ServerInterfaceWrapper) ResumeStandingOrder(ctx echo.Context) error {
	return w.withID(ctx, w.Handler.ResumeStandingOrder)
}

func (w *ServerInterfaceWrapper) EndStandingOrder(ctx echo.Context) error {
	return w.withID(ctx, w.Handler.EndStandingOrder)
}

func (w *ServerInterfaceWrapper) GenerateSchedules(ctx echo.Context) error {
	return w.withID(ctx, w.Handler.GenerateSchedules)
}

func (w *ServerInterfaceWrapper) CompleteSchedule(ctx echo.Context) error {
	return w.withID(ctx, w.Handler.CompleteSchedule)
}

func (w *ServerInterfaceWrapper) SkipSchedule(ctx echo.Context) error {
	return w.withID(ctx, w.Handler.SkipSchedule)
}

func (w *ServerInterfaceWrapper) GetScheduleView(ctx echo.Context) error {
	var params GetScheduleViewParams
	if err := runtime.BindQueryParameter("form", true, false, "view", ctx.QueryParams(), &params.View); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter view: "+err.Error())
	}
	if err := runtime.BindQueryParameter("form", true, false, "date", ctx.QueryParams(), &params.Date); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter date: "+err.Error())
	}

	return w.Handler.GetScheduleView(ctx, params)
}

func (w *ServerInterfaceWrapper) withID(ctx echo.Context, next func(echo.Context, openapi_types.UUID) error) error {
	id, err := bindID(ctx)
	if err != nil {
		return err
	}
	return next(ctx, id)
}

func bindID(ctx echo.Context) (openapi_types.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return id, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter id: "+err.Error())
	}
	return id, nil
}

// EchoRouter is the subset of *echo.Echo and *echo.Group used for routing.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET(baseURL+"/api/v1/standing-orders", w.ListStandingOrders)
	router.POST(baseURL+"/api/v1/standing-orders", w.CreateStandingOrder)
	router.POST(baseURL+"/api/v1/standing-orders/schedules/generate", w.GenerateAllSchedules)
	router.GET(baseURL+"/api/v1/standing-orders/:id", w.GetStandingOrder)
	router.PUT(baseURL+"/api/v1/standing-orders/:id", w.EditStandingOrder)
	router.POST(baseURL+"/api/v1/standing-orders/:id/pause", w.PauseStandingOrder)
	router.POST(baseURL+"/api/v1/standing-orders/:id/resume", w.ResumeStandingOrder)
	router.POST(baseURL+"/api/v1/standing-orders/:id/end", w.EndStandingOrder)
	router.POST(baseURL+"/api/v1/standing-orders/:id/schedules/generate", w.GenerateSchedules)
	router.POST(baseURL+"/api/v1/schedules/:id/complete", w.CompleteSchedule)
	router.POST(baseURL+"/api/v1/schedules/:id/skip", w.SkipSchedule)
	router.GET(baseURL+"/api/v1/schedule-view", w.GetScheduleView)
}
