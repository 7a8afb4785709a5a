package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "standingorders/internal/adapters/in/http"
	"standingorders/internal/core/application/usecases/commands"
	"standingorders/internal/core/application/usecases/queries"
	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/schedule"
	"standingorders/internal/core/domain/model/standingorder"
	"standingorders/internal/pkg/errs"
	"standingorders/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type createMock struct{ mock.Mock }

func (m *createMock) Handle(ctx context.Context, cmd commands.CreateStandingOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type editMock struct{ mock.Mock }

func (m *editMock) Handle(ctx context.Context, cmd commands.EditStandingOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type pauseMock struct{ mock.Mock }

func (m *pauseMock) Handle(ctx context.Context, cmd commands.PauseStandingOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type resumeMock struct{ mock.Mock }

func (m *resumeMock) Handle(ctx context.Context, cmd commands.ResumeStandingOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type endMock struct{ mock.Mock }

func (m *endMock) Handle(ctx context.Context, cmd commands.EndStandingOrderCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type generateMock struct{ mock.Mock }

func (m *generateMock) Handle(ctx context.Context, cmd commands.GenerateSchedulesCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

type completeMock struct{ mock.Mock }

func (m *completeMock) Handle(ctx context.Context, cmd commands.CompleteScheduleCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type skipMock struct{ mock.Mock }

func (m *skipMock) Handle(ctx context.Context, cmd commands.SkipScheduleCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type viewMock struct{ mock.Mock }

func (m *viewMock) Handle(ctx context.Context, q queries.GetScheduleViewQuery) (queries.GetScheduleViewQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.GetScheduleViewQueryResponse), args.Error(1)
}

type detailMock struct{ mock.Mock }

func (m *detailMock) Handle(ctx context.Context, q queries.GetStandingOrderQuery) (queries.GetStandingOrderQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.GetStandingOrderQueryResponse), args.Error(1)
}

type listMock struct{ mock.Mock }

func (m *listMock) Handle(ctx context.Context, q queries.ListStandingOrdersQuery) (queries.ListStandingOrdersQueryResponse, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.ListStandingOrdersQueryResponse), args.Error(1)
}

const testHorizon = 14

type fixture struct {
	create   *createMock
	edit     *editMock
	pause    *pauseMock
	resume   *resumeMock
	end      *endMock
	generate *generateMock
	complete *completeMock
	skip     *skipMock
	view     *viewMock
	detail   *detailMock
	list     *listMock

	e *echo.Echo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		create:   &createMock{},
		edit:     &editMock{},
		pause:    &pauseMock{},
		resume:   &resumeMock{},
		end:      &endMock{},
		generate: &generateMock{},
		complete: &completeMock{},
		skip:     &skipMock{},
		view:     &viewMock{},
		detail:   &detailMock{},
		list:     &listMock{},
	}

	handlers := api.Handlers{
		CreateStandingOrder: f.create,
		EditStandingOrder:   f.edit,
		PauseStandingOrder:  f.pause,
		ResumeStandingOrder: f.resume,
		EndStandingOrder:    f.end,
		GenerateSchedules:   f.generate,
		CompleteSchedule:    f.complete,
		SkipSchedule:        f.skip,
		GetScheduleView:     f.view,
		GetStandingOrder:    f.detail,
		ListStandingOrders:  f.list,
	}

	reg := prometheus.NewRegistry()
	server := api.NewServer(handlers, testHorizon, metrics.NewScheduleMetrics(reg), nil)

	e, err := api.NewRouter(t.Context(), server, reg, nil)
	require.NoError(t, err)
	f.e = e

	t.Cleanup(func() {
		mock.AssertExpectationsForObjects(t,
			&f.create.Mock, &f.edit.Mock, &f.pause.Mock, &f.resume.Mock, &f.end.Mock, &f.generate.Mock,
			&f.complete.Mock, &f.skip.Mock, &f.view.Mock, &f.detail.Mock, &f.list.Mock,
		)
	})

	return f
}

func (f *fixture) do(method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) api.Error {
	t.Helper()
	var body api.Error
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func Test_CreateStandingOrder_ReturnsCreatedID(t *testing.T) {
	f := newFixture(t)
	customerID := kernel.NewUUID()

	f.create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateStandingOrderCommand) bool {
		return cmd.CustomerID().IsEqual(customerID) &&
			cmd.Actor() == "alice" &&
			cmd.DeliveryDays().IsEqual(mustDays(t, 0, 2)) &&
			cmd.StartDate() != nil && cmd.StartDate().String() == "2026-11-02" &&
			cmd.EndDate() == nil &&
			len(cmd.Items()) == 1 && cmd.Items()[0].Quantity == 12
	})).Return(nil).Once()

	body := `{"customer_id":"` + customerID.String() + `","delivery_days":[0,2],"start_date":"2026-11-02",` +
		`"items":[{"product_code":"BRD-01","product_name":"Sourdough","quantity":12}]}`
	rec := f.do(http.MethodPost, "/api/v1/standing-orders", body, map[string]string{api.ActorHeader: "alice"})

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created api.CreatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.NotEqual(t, [16]byte{}, [16]byte(created.Id))
}

func Test_CreateStandingOrder_RejectsUnknownWeekday(t *testing.T) {
	f := newFixture(t)

	body := `{"customer_id":"` + kernel.NewUUID().String() + `","delivery_days":[5],` +
		`"items":[{"product_code":"BRD-01","product_name":"Sourdough","quantity":1}]}`
	rec := f.do(http.MethodPost, "/api/v1/standing-orders", body, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func Test_CreateStandingOrder_RejectsMalformedBody(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/standing-orders", `{"delivery_days":`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decodeError(t, rec).Message)
}

func Test_PauseStandingOrder_DefaultsActorToSystem(t *testing.T) {
	f := newFixture(t)
	orderID := kernel.NewUUID()

	f.pause.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.PauseStandingOrderCommand) bool {
		return cmd.OrderID().IsEqual(orderID) && cmd.Actor() == api.SystemActor && cmd.Reason() == "holiday"
	})).Return(nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/standing-orders/"+orderID.String()+"/pause", `{"reason":"holiday"}`, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func Test_PauseStandingOrder_RejectsOversizedActor(t *testing.T) {
	f := newFixture(t)
	orderID := kernel.NewUUID()

	rec := f.do(http.MethodPost, "/api/v1/standing-orders/"+orderID.String()+"/pause", `{"reason":"holiday"}`,
		map[string]string{api.ActorHeader: strings.Repeat("a", commands.MaxActorLength+50)})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "actor length")
	f.pause.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func Test_Commands_MapErrorsToStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errs.NewObjectNotFoundError("standing order", "x"), http.StatusNotFound},
		{"invalid state", errs.NewInvalidStateError("standing order", "ended", "resume"), http.StatusConflict},
		{"validation", errs.NewValueIsRequiredError("actor"), http.StatusBadRequest},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.resume.On("Handle", mock.Anything, mock.Anything).Return(tt.err).Once()

			rec := f.do(http.MethodPost, "/api/v1/standing-orders/"+kernel.NewUUID().String()+"/resume", "", nil)

			assert.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.want, decodeError(t, rec).Code)
		})
	}
}

func Test_InternalErrors_HideTheirMessage(t *testing.T) {
	f := newFixture(t)
	f.end.On("Handle", mock.Anything, mock.Anything).Return(errors.New("pq: relation missing")).Once()

	rec := f.do(http.MethodPost, "/api/v1/standing-orders/"+kernel.NewUUID().String()+"/end", "", nil)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, http.StatusText(http.StatusInternalServerError), decodeError(t, rec).Message)
}

func Test_PathID_MustBeUUID(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/api/v1/schedules/not-a-uuid/complete", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_GenerateSchedules_UsesConfiguredHorizon(t *testing.T) {
	f := newFixture(t)
	orderID := kernel.NewUUID()

	f.generate.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.GenerateSchedulesCommand) bool {
		return cmd.OrderID() != nil && cmd.OrderID().IsEqual(orderID) && cmd.HorizonDays() == testHorizon
	})).Return(4, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/standing-orders/"+orderID.String()+"/schedules/generate", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.GeneratedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 4, resp.Created)

	metricsRec := f.do(http.MethodGet, "/metrics", "", nil)
	assert.Contains(t, metricsRec.Body.String(), `schedules_generated_total{source="api"} 4`)
}

func Test_GenerateAllSchedules_HonoursRequestedHorizon(t *testing.T) {
	f := newFixture(t)

	f.generate.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.GenerateSchedulesCommand) bool {
		return cmd.OrderID() == nil && cmd.HorizonDays() == 30
	})).Return(0, nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/standing-orders/schedules/generate", `{"horizon_days":30}`, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"created":0}`, rec.Body.String())
}

func Test_CompleteSchedule_PassesReference(t *testing.T) {
	f := newFixture(t)
	scheduleID := kernel.NewUUID()

	f.complete.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CompleteScheduleCommand) bool {
		return cmd.ScheduleID().IsEqual(scheduleID) && cmd.Reference() == "SO-1001" && cmd.Actor() == "bob"
	})).Return(nil).Once()

	rec := f.do(http.MethodPost, "/api/v1/schedules/"+scheduleID.String()+"/complete",
		`{"order_reference":"SO-1001"}`, map[string]string{api.ActorHeader: "bob"})

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func Test_SkipSchedule_ConflictWhenAlreadyHandled(t *testing.T) {
	f := newFixture(t)
	f.skip.On("Handle", mock.Anything, mock.Anything).
		Return(errs.NewInvalidStateError("schedule", "created", "skip")).Once()

	rec := f.do(http.MethodPost, "/api/v1/schedules/"+kernel.NewUUID().String()+"/skip", `{"reason":"closed"}`, nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func Test_GetScheduleView_DefaultsToMonth(t *testing.T) {
	f := newFixture(t)
	day := kernel.NewDate(2026, 11, 4)
	entryID := kernel.NewUUID()

	f.view.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetScheduleViewQuery) bool {
		return q.ViewType() == queries.MonthView && q.Target() == nil
	})).Return(queries.GetScheduleViewQueryResponse{
		ViewType: queries.MonthView,
		Target:   day,
		From:     day.StartOfMonth(),
		To:       day.EndOfMonth(),
		Days: []queries.ScheduleDay{{
			Date: day,
			Entries: []queries.ScheduleEntry{{
				ScheduleView: queries.ScheduleView{
					ID:            entryID,
					ScheduledDate: day,
					Status:        schedule.Pending,
				},
				CustomerName: "Corner Cafe",
			}},
		}},
		Totals: queries.ScheduleTotals{Total: 1, Pending: 1},
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/schedule-view", "", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp api.ScheduleViewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "month", resp.View)
	assert.Equal(t, "2026-11-01", resp.From.String())
	assert.Equal(t, "2026-11-30", resp.To.String())
	require.Len(t, resp.Days, 1)
	require.Len(t, resp.Days[0].Entries, 1)
	assert.Equal(t, "Corner Cafe", resp.Days[0].Entries[0].CustomerName)
	assert.Equal(t, "pending", resp.Days[0].Entries[0].Status)
	assert.Equal(t, 1, resp.Totals.Pending)
}

func Test_GetScheduleView_RejectsUnknownView(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/schedule-view?view=year", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_GetScheduleView_RejectsMalformedDate(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/schedule-view?view=day&date=04-11-2026", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_GetStandingOrder_ParsesMonth(t *testing.T) {
	f := newFixture(t)
	orderID := kernel.NewUUID()

	f.detail.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetStandingOrderQuery) bool {
		return q.ID().IsEqual(orderID) && q.Month() != nil && q.Month().String() == "2026-12-01"
	})).Return(queries.GetStandingOrderQueryResponse{
		Order: queries.StandingOrderDetail{
			ID:           orderID,
			CustomerID:   kernel.NewUUID(),
			CustomerName: "Corner Cafe",
			DeliveryDays: mustDays(t, 0, 2),
			StartDate:    kernel.NewDate(2026, 11, 2),
			Status:       standingorder.Active,
		},
		Month: kernel.NewDate(2026, 12, 1),
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/standing-orders/"+orderID.String()+"?month=2026-12", "", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp api.StandingOrderDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-12", resp.Month)
	assert.Equal(t, []string{"Monday", "Wednesday"}, resp.DeliveryDayNames)
	assert.Equal(t, "active", resp.Status)
}

func Test_GetStandingOrder_RejectsMalformedMonth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/standing-orders/"+kernel.NewUUID().String()+"?month=December", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_ListStandingOrders_RendersDashboard(t *testing.T) {
	f := newFixture(t)
	scheduleID := kernel.NewUUID()

	f.list.On("Handle", mock.Anything, mock.Anything).Return(queries.ListStandingOrdersQueryResponse{
		Today:       kernel.NewDate(2026, 11, 4),
		ActiveCount: 2,
		PausedCount: 1,
		TodayDeliveries: []queries.TodayDelivery{
			{StandingOrderID: kernel.NewUUID(), CustomerName: "A", Status: schedule.Pending},
			{StandingOrderID: kernel.NewUUID(), CustomerName: "B", ScheduleID: &scheduleID, Status: schedule.Created},
		},
		PendingThisWeek: 5,
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/standing-orders", "", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp api.Dashboard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.ActiveCount)
	assert.Equal(t, 5, resp.PendingThisWeek)
	require.Len(t, resp.TodayDeliveries, 2)
	assert.Nil(t, resp.TodayDeliveries[0].ScheduleId)
	require.NotNil(t, resp.TodayDeliveries[1].ScheduleId)
	assert.Equal(t, scheduleID.String(), resp.TodayDeliveries[1].ScheduleId.String())
	assert.Equal(t, "created", resp.TodayDeliveries[1].Status)
}

func Test_Router_ServesHealthAndDocument(t *testing.T) {
	f := newFixture(t)

	health := f.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, health.Code)

	doc := f.do(http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, doc.Code)
	assert.Contains(t, doc.Body.String(), "Standing Orders API")
}

func Test_UnknownRoute_UsesErrorShape(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/nothing-here", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, decodeError(t, rec).Code)
}

func mustDays(t *testing.T, days ...int) standingorder.WeekdaySet {
	t.Helper()
	set, err := standingorder.NewWeekdaySet(days)
	require.NoError(t, err)
	return set
}
