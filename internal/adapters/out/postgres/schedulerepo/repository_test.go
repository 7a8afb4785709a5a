package schedulerepo_test

import (
	"context"
	"testing"
	"time"

	"standingorders/internal/adapters/out/postgres/schedulerepo"
	"standingorders/internal/core/domain/model/kernel"
	"standingorders/internal/core/domain/model/schedule"
	"standingorders/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type ScheduleRepositoryTestSuite struct {
	suite.Suite
	db         *gorm.DB
	repository *schedulerepo.GormScheduleRepository
	tracker    *MockAggregateTracker
	orderID    kernel.UUID
	now        time.Time
}

func (suite *ScheduleRepositoryTestSuite) SetupTest() {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	suite.Require().NoError(err)

	sqlDB, err := db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)
	suite.T().Cleanup(func() { _ = sqlDB.Close() })

	suite.Require().NoError(db.AutoMigrate(&schedulerepo.ScheduleDTO{}))

	suite.db = db
	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = schedulerepo.NewGormScheduleRepository(db, suite.tracker)
	suite.orderID = kernel.NewUUID()
	suite.now = time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
}

func (suite *ScheduleRepositoryTestSuite) day(offset int) kernel.Date {
	return kernel.DateOf(suite.now).AddDays(offset)
}

func (suite *ScheduleRepositoryTestSuite) add(offset int) *schedule.Schedule {
	s, err := schedule.NewPendingSchedule(kernel.NewUUID(), suite.orderID, suite.day(offset), suite.now)
	suite.Require().NoError(err)

	inserted, err := suite.repository.AddIfAbsent(context.Background(), s)
	suite.Require().NoError(err)
	suite.Require().True(inserted)
	return s
}

func (suite *ScheduleRepositoryTestSuite) statusOf(s *schedule.Schedule) schedule.Status {
	got, err := suite.repository.Get(context.Background(), s.ID())
	suite.Require().NoError(err)
	return got.Status()
}

func (suite *ScheduleRepositoryTestSuite) TestAddIfAbsent_SameOrderAndDate_InsertsOnce() {
	ctx := context.Background()
	first := suite.add(2)

	again, err := schedule.NewPendingSchedule(kernel.NewUUID(), suite.orderID, suite.day(2), suite.now)
	suite.Require().NoError(err)

	inserted, err := suite.repository.AddIfAbsent(ctx, again)

	suite.Require().NoError(err)
	suite.False(inserted)

	var count int64
	suite.Require().NoError(suite.db.Model(&schedulerepo.ScheduleDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)

	got, err := suite.repository.Get(ctx, first.ID())
	suite.Require().NoError(err)
	suite.True(got.ScheduledDate().Equal(suite.day(2)))
	suite.Equal(schedule.Pending, got.Status())
	suite.True(got.CreatedAt().Equal(suite.now))
}

func (suite *ScheduleRepositoryTestSuite) TestAddIfAbsent_OtherOrderSameDate_Inserts() {
	suite.add(2)

	other, err := schedule.NewPendingSchedule(kernel.NewUUID(), kernel.NewUUID(), suite.day(2), suite.now)
	suite.Require().NoError(err)

	inserted, err := suite.repository.AddIfAbsent(context.Background(), other)

	suite.Require().NoError(err)
	suite.True(inserted)
}

func (suite *ScheduleRepositoryTestSuite) TestGet_Unknown_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ScheduleRepositoryTestSuite) TestUpdate_FromPending_PersistsCompletion() {
	ctx := context.Background()
	s := suite.add(1)
	completedAt := suite.now.Add(time.Hour)
	suite.Require().NoError(s.Complete("PO-778", "left at gate", "staff-1", completedAt))

	suite.Require().NoError(suite.repository.Update(ctx, s, schedule.Pending))

	got, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)
	suite.Equal(schedule.Created, got.Status())
	suite.Equal("PO-778", got.OrderReference())
	suite.Equal("left at gate", got.Notes())
	suite.Equal("staff-1", got.OrderCreatedBy())
	suite.Require().NotNil(got.OrderCreatedDate())
	suite.True(got.OrderCreatedDate().Equal(completedAt))
}

func (suite *ScheduleRepositoryTestSuite) TestUpdate_StatusMovedOn_ReturnsInvalidState() {
	ctx := context.Background()
	s := suite.add(1)

	stale, err := suite.repository.Get(ctx, s.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(s.Skip("closed"))
	suite.Require().NoError(suite.repository.Update(ctx, s, schedule.Pending))

	suite.Require().NoError(stale.Complete("PO-1", "", "staff-2", suite.now))
	err = suite.repository.Update(ctx, stale, schedule.Pending)

	suite.Require().ErrorIs(err, errs.ErrInvalidState)
	suite.Equal(schedule.Skipped, suite.statusOf(s))
}

func (suite *ScheduleRepositoryTestSuite) TestUpdate_Missing_ReturnsNotFound() {
	s, err := schedule.NewPendingSchedule(kernel.NewUUID(), suite.orderID, suite.day(1), suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(s.Skip(""))

	err = suite.repository.Update(context.Background(), s, schedule.Pending)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ScheduleRepositoryTestSuite) TestSkipPendingAfter_TouchesOnlyLaterPendingRows() {
	ctx := context.Background()
	today := suite.add(0)
	created := suite.add(2)
	suite.Require().NoError(created.Complete("PO-9", "", "staff-1", suite.now))
	suite.Require().NoError(suite.repository.Update(ctx, created, schedule.Pending))
	later := suite.add(3)
	latest := suite.add(7)

	other, err := schedule.NewPendingSchedule(kernel.NewUUID(), kernel.NewUUID(), suite.day(3), suite.now)
	suite.Require().NoError(err)
	_, err = suite.repository.AddIfAbsent(ctx, other)
	suite.Require().NoError(err)

	n, err := suite.repository.SkipPendingAfter(ctx, suite.orderID, suite.day(0), schedule.EndedNote)

	suite.Require().NoError(err)
	suite.Equal(2, n)
	suite.Equal(schedule.Pending, suite.statusOf(today))
	suite.Equal(schedule.Created, suite.statusOf(created))
	suite.Equal(schedule.Skipped, suite.statusOf(later))
	suite.Equal(schedule.Skipped, suite.statusOf(latest))
	suite.Equal(schedule.Pending, suite.statusOf(other))

	got, err := suite.repository.Get(ctx, later.ID())
	suite.Require().NoError(err)
	suite.Equal(schedule.EndedNote, got.Notes())
}

func (suite *ScheduleRepositoryTestSuite) TestDeletePendingAfter_KeepsTodayAndNonPending() {
	ctx := context.Background()
	today := suite.add(0)
	skipped := suite.add(1)
	suite.Require().NoError(skipped.Skip(""))
	suite.Require().NoError(suite.repository.Update(ctx, skipped, schedule.Pending))
	suite.add(2)
	suite.add(4)

	n, err := suite.repository.DeletePendingAfter(ctx, suite.orderID, suite.day(0))

	suite.Require().NoError(err)
	suite.Equal(2, n)

	var count int64
	suite.Require().NoError(suite.db.Model(&schedulerepo.ScheduleDTO{}).Count(&count).Error)
	suite.Equal(int64(2), count)
	suite.Equal(schedule.Pending, suite.statusOf(today))
	suite.Equal(schedule.Skipped, suite.statusOf(skipped))
}

func TestScheduleRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleRepositoryTestSuite))
}
