package queries_test

import (
	"context"

	"standingorders/internal/core/application/usecases/queries"
	"standingorders/internal/core/domain/model/schedule"
	"standingorders/internal/core/domain/model/standingorder"
)

func (suite *QueryHandlersIntegrationTestSuite) dashboard() queries.ListStandingOrdersQueryResponse {
	resp, err := queries.NewListStandingOrdersQueryHandler(suite.db, suite.clock).
		Handle(context.Background(), queries.NewListStandingOrdersQuery())
	suite.Require().NoError(err)
	return resp
}

func (suite *QueryHandlersIntegrationTestSuite) TestDashboard_EmptyDatabase() {
	resp := suite.dashboard()

	suite.Equal("2026-01-07", resp.Today.String())
	suite.NotNil(resp.Orders)
	suite.Empty(resp.Orders)
	suite.NotNil(resp.TodayDeliveries)
	suite.Empty(resp.TodayDeliveries)
	suite.Zero(resp.PendingThisWeek)
}

func (suite *QueryHandlersIntegrationTestSuite) TestDashboard_CountsAndTodaysDeliveries() {
	withRow := suite.addOrder("Corner Shop", standingorder.Active, 0, 2)
	withoutRow := suite.addOrder("Alpha Cafe", standingorder.Active, 2)
	suite.addOrder("Bakery Tuesday", standingorder.Active, 1)
	paused := suite.addOrder("Paused Deli", standingorder.Paused, 2)
	ended := suite.addOrder("Ended Grocer", standingorder.Ended, 2)

	today := suite.addSchedule(withRow, 0, suite.complete)
	suite.addSchedule(withRow, -2, nil)
	suite.addSchedule(withRow, 5, nil) // next week
	suite.addSchedule(paused, 0, nil)
	suite.addSchedule(ended, -2, suite.skip)

	resp := suite.dashboard()

	suite.Require().Len(resp.Orders, 4)
	suite.Equal("Alpha Cafe", resp.Orders[0].CustomerName)
	suite.Equal("Bakery Tuesday", resp.Orders[1].CustomerName)
	suite.Equal("Corner Shop", resp.Orders[2].CustomerName)
	suite.Equal("Paused Deli", resp.Orders[3].CustomerName)
	suite.Len(resp.Orders[0].Items, 1)
	suite.Equal(3, resp.ActiveCount)
	suite.Equal(1, resp.PausedCount)

	suite.Require().Len(resp.TodayDeliveries, 2)
	first := resp.TodayDeliveries[0]
	suite.True(first.StandingOrderID.IsEqual(withoutRow.ID()))
	suite.Nil(first.ScheduleID)
	suite.Equal(schedule.Pending, first.Status)

	second := resp.TodayDeliveries[1]
	suite.True(second.StandingOrderID.IsEqual(withRow.ID()))
	suite.Require().NotNil(second.ScheduleID)
	suite.True(second.ScheduleID.IsEqual(today.ID()))
	suite.Equal(schedule.Created, second.Status)

	// Monday pending of Corner Shop and Wednesday pending of Paused Deli.
	suite.Equal(2, resp.PendingThisWeek)
}
