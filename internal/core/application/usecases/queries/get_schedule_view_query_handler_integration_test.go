package queries_test

import (
	"context"

	"standingorders/internal/core/application/usecases/queries"
	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/schedule"
	"standingorders/internal/core/domain/model/standingorder"
)

func (suite *QueryHandlersIntegrationTestSuite) scheduleView(view queries.ViewType, target *kernel.Date) queries.GetScheduleViewQueryResponse {
	query, err := queries.NewGetScheduleViewQuery(view, target)
	suite.Require().NoError(err)

	resp, err := queries.NewGetScheduleViewQueryHandler(suite.db, suite.clock).Handle(context.Background(), query)
	suite.Require().NoError(err)
	return resp
}

// seedCalendar stores, around Wednesday 7 January:
//
//	Alpha Cafe (active)  Mon 5 pending, Wed 7 created, Mon 12 pending
//	Bakery Bee (active)  Mon 5 pending, Wed 7 skipped
//	Cafe Paused (paused) Wed 7 pending
//	Deli Ended (ended)   Mon 5 skipped
func (suite *QueryHandlersIntegrationTestSuite) seedCalendar() (alpha, bakery *standingorder.StandingOrder) {
	bakery = suite.addOrder("Bakery Bee", standingorder.Active, 0, 2)
	alpha = suite.addOrder("Alpha Cafe", standingorder.Active, 0, 2)
	paused := suite.addOrder("Cafe Paused", standingorder.Paused, 2)
	ended := suite.addOrder("Deli Ended", standingorder.Ended, 0)

	suite.addSchedule(alpha, -2, nil)
	suite.addSchedule(alpha, 0, suite.complete)
	suite.addSchedule(alpha, 5, nil)
	suite.addSchedule(bakery, 0, suite.skip)
	suite.addSchedule(bakery, -2, nil)
	suite.addSchedule(paused, 0, nil)
	suite.addSchedule(ended, -2, suite.skip)
	return alpha, bakery
}

func (suite *QueryHandlersIntegrationTestSuite) TestScheduleView_Week_GroupsByDateThenCustomer() {
	alpha, _ := suite.seedCalendar()
	target := suite.today()

	resp := suite.scheduleView(queries.WeekView, &target)

	suite.Equal("2026-01-05", resp.From.String())
	suite.Equal("2026-01-11", resp.To.String())
	suite.Require().Len(resp.Days, 2)

	monday := resp.Days[0]
	suite.Equal("2026-01-05", monday.Date.String())
	suite.Require().Len(monday.Entries, 3)
	suite.Equal("Alpha Cafe", monday.Entries[0].CustomerName)
	suite.Equal("Bakery Bee", monday.Entries[1].CustomerName)
	suite.Equal("Deli Ended", monday.Entries[2].CustomerName)

	wednesday := resp.Days[1]
	suite.Equal("2026-01-07", wednesday.Date.String())
	suite.Require().Len(wednesday.Entries, 2)
	suite.Equal("Alpha Cafe", wednesday.Entries[0].CustomerName)
	suite.Equal(schedule.Created, wednesday.Entries[0].Status)
	suite.Equal("PO-1", wednesday.Entries[0].OrderReference)
	suite.Equal("Bakery Bee", wednesday.Entries[1].CustomerName)
	suite.Equal(schedule.Skipped, wednesday.Entries[1].Status)

	first := monday.Entries[0]
	suite.True(first.StandingOrderID.IsEqual(alpha.ID()))
	suite.True(first.CustomerID.IsEqual(alpha.CustomerID()))
	suite.Equal("ring bell", first.SpecialInstructions)
	suite.Require().Len(first.Items, 1)
	suite.Equal("BRD-01", first.Items[0].ProductCode)
	suite.Equal(12, first.Items[0].Quantity)

	suite.Equal(queries.ScheduleTotals{Total: 5, Completed: 1, Pending: 2, Skipped: 2}, resp.Totals)
}

func (suite *QueryHandlersIntegrationTestSuite) TestScheduleView_ExcludesPausedOrders() {
	suite.seedCalendar()
	target := suite.today()

	resp := suite.scheduleView(queries.DayView, &target)

	suite.Require().Len(resp.Days, 1)
	for _, e := range resp.Days[0].Entries {
		suite.NotEqual("Cafe Paused", e.CustomerName)
	}
	suite.Equal(2, resp.Totals.Total)
}

func (suite *QueryHandlersIntegrationTestSuite) TestScheduleView_MonthDefaultsToToday() {
	suite.seedCalendar()

	resp := suite.scheduleView(queries.MonthView, nil)

	suite.Equal("2026-01-07", resp.Target.String())
	suite.Equal("2026-01-01", resp.From.String())
	suite.Equal("2026-01-31", resp.To.String())
	suite.Len(resp.Days, 3)
	suite.Equal(6, resp.Totals.Total)
	suite.Equal(3, resp.Totals.Pending)
}

func (suite *QueryHandlersIntegrationTestSuite) TestScheduleView_EmptyRange() {
	suite.seedCalendar()
	target := kernel.NewDate(2026, 3, 2)

	resp := suite.scheduleView(queries.WeekView, &target)

	suite.NotNil(resp.Days)
	suite.Empty(resp.Days)
	suite.Equal(queries.ScheduleTotals{}, resp.Totals)
}
