package queries_test

import (
	"context"
	"time"

	"standingorders/internal/core/application/usecases/queries"
	"standingorders/internal/core/domain/model/auditlog"
	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/schedule"
	"standingorders/internal/core/domain/model/standingorder"
	"standingorders/internal/pkg/errs"
)

func (suite *QueryHandlersIntegrationTestSuite) standingOrder(id kernel.UUID, month *kernel.Date) (queries.GetStandingOrderQueryResponse, error) {
	query, err := queries.NewGetStandingOrderQuery(id, month)
	suite.Require().NoError(err)

	return queries.NewGetStandingOrderQueryHandler(suite.db, suite.clock).Handle(context.Background(), query)
}

func (suite *QueryHandlersIntegrationTestSuite) TestStandingOrder_ReturnsOrderItemsAndCurrentMonth() {
	so := suite.addOrder("Alpha Cafe", standingorder.Active, 0, 2)
	suite.addSchedule(so, 5, nil)
	suite.addSchedule(so, -2, suite.complete)
	suite.addSchedule(so, 26, nil) // 2 February

	resp, err := suite.standingOrder(so.ID(), nil)

	suite.Require().NoError(err)
	suite.True(resp.Order.ID.IsEqual(so.ID()))
	suite.Equal("Alpha Cafe", resp.Order.CustomerName)
	suite.Equal(standingorder.Active, resp.Order.Status)
	suite.Equal("0,2", resp.Order.DeliveryDays.String())
	suite.Equal("2026-01-05", resp.Order.StartDate.String())
	suite.Nil(resp.Order.EndDate)
	suite.Equal("ring bell", resp.Order.SpecialInstructions)
	suite.Equal("staff-1", resp.Order.CreatedBy)
	suite.Require().Len(resp.Order.Items, 1)
	suite.Equal("loaves", resp.Order.Items[0].UnitType)

	suite.Equal("2026-01", resp.Month.MonthString())
	suite.Require().Len(resp.Schedules, 2)
	suite.Equal("2026-01-05", resp.Schedules[0].ScheduledDate.String())
	suite.Equal(schedule.Created, resp.Schedules[0].Status)
	suite.NotNil(resp.Schedules[0].OrderCreatedDate)
	suite.Equal("2026-01-12", resp.Schedules[1].ScheduledDate.String())
	suite.Nil(resp.Schedules[1].OrderCreatedDate)
	suite.NotNil(resp.Logs)
}

func (suite *QueryHandlersIntegrationTestSuite) TestStandingOrder_RequestedMonth() {
	so := suite.addOrder("Alpha Cafe", standingorder.Active, 0, 2)
	suite.addSchedule(so, 5, nil)
	suite.addSchedule(so, 26, nil)
	february := kernel.NewDate(2026, time.February, 17)

	resp, err := suite.standingOrder(so.ID(), &february)

	suite.Require().NoError(err)
	suite.Equal("2026-02-01", resp.Month.String())
	suite.Require().Len(resp.Schedules, 1)
	suite.Equal("2026-02-02", resp.Schedules[0].ScheduledDate.String())
}

func (suite *QueryHandlersIntegrationTestSuite) TestStandingOrder_KeepsTwentyNewestLogs() {
	so := suite.addOrder("Alpha Cafe", standingorder.Active, 0)
	for i := range 22 {
		suite.addLog(so, auditlog.Modified, queryNow.Add(time.Duration(i)*time.Minute))
	}

	resp, err := suite.standingOrder(so.ID(), nil)

	suite.Require().NoError(err)
	suite.Require().Len(resp.Logs, queries.RecentLogLimit)
	suite.True(resp.Logs[0].PerformedAt.Equal(queryNow.Add(21 * time.Minute)))
	suite.True(resp.Logs[19].PerformedAt.Equal(queryNow.Add(2 * time.Minute)))
	suite.Equal(auditlog.Modified, resp.Logs[0].ActionType)
	suite.Equal(queryNow.Add(21*time.Minute).Format(time.RFC3339), resp.Logs[0].Details["at"])
}

func (suite *QueryHandlersIntegrationTestSuite) TestStandingOrder_EndedOrderShowsEndDate() {
	so := suite.addOrder("Deli", standingorder.Ended, 0)

	resp, err := suite.standingOrder(so.ID(), nil)

	suite.Require().NoError(err)
	suite.Equal(standingorder.Ended, resp.Order.Status)
	suite.Require().NotNil(resp.Order.EndDate)
	suite.True(resp.Order.EndDate.Equal(suite.today()))
}

func (suite *QueryHandlersIntegrationTestSuite) TestStandingOrder_Unknown_ReturnsNotFound() {
	_, err := suite.standingOrder(kernel.NewUUID(), nil)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}
