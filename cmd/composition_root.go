package cmd

import (
	"time"

	httpin "standingorders/internal/adapters/in/http"
	"standingorders/internal/adapters/out/postgres"
	"standingorders/internal/core/application/usecases/commands"
	"standingorders/internal/core/application/usecases/queries"
	"standingorders/internal/core/domain/services"
	"standingorders/internal/core/ports"
	"standingorders/internal/jobs"
	"standingorders/internal/pkg/logger"
	"standingorders/internal/pkg/metrics"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config          Config
	gormDB          *gorm.DB
	uowFactory      *postgres.GormUnitOfWorkFactory
	clock           ports.Clock
	location        *time.Location
	generator       commands.ScheduleGenerator
	log             *logger.Logger
	jobMetrics      *metrics.JobMetrics
	scheduleMetrics *metrics.ScheduleMetrics
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	clock ports.Clock,
	location *time.Location,
	log *logger.Logger,
	jobMetrics *metrics.JobMetrics,
	scheduleMetrics *metrics.ScheduleMetrics,
) CompositionRoot {
	return CompositionRoot{
		config:          config,
		gormDB:          gormDB,
		uowFactory:      postgres.NewGormUnitOfWorkFactory(gormDB),
		clock:           clock,
		location:        location,
		generator:       commands.NewScheduleGenerator(services.NewSchedulePlanner()),
		log:             log,
		jobMetrics:      jobMetrics,
		scheduleMetrics: scheduleMetrics,
	}
}

func (c *CompositionRoot) lifecycleUoWFactory() commands.LifecycleUoWFactory {
	return FuncLifecycleUoWFactory(func() commands.LifecycleUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) scheduleUoWFactory() commands.ScheduleUoWFactory {
	return FuncScheduleUoWFactory(func() commands.ScheduleUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) generationUoWFactory() commands.GenerationUoWFactory {
	return FuncGenerationUoWFactory(func() commands.GenerationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateStandingOrderCommandHandler() *commands.CreateStandingOrderCommandHandler {
	h := commands.NewCreateStandingOrderCommandHandler(c.lifecycleUoWFactory(), c.generator, c.clock, c.config.HorizonDays)
	return &h
}

func (c *CompositionRoot) CreateEditStandingOrderCommandHandler() *commands.EditStandingOrderCommandHandler {
	h := commands.NewEditStandingOrderCommandHandler(c.lifecycleUoWFactory(), c.generator, c.clock, c.config.HorizonDays)
	return &h
}

func (c *CompositionRoot) CreatePauseStandingOrderCommandHandler() *commands.PauseStandingOrderCommandHandler {
	h := commands.NewPauseStandingOrderCommandHandler(c.lifecycleUoWFactory(), c.clock)
	return &h
}

func (c *CompositionRoot) CreateResumeStandingOrderCommandHandler() *commands.ResumeStandingOrderCommandHandler {
	h := commands.NewResumeStandingOrderCommandHandler(c.lifecycleUoWFactory(), c.generator, c.clock, c.config.HorizonDays)
	return &h
}

func (c *CompositionRoot) CreateEndStandingOrderCommandHandler() *commands.EndStandingOrderCommandHandler {
	h := commands.NewEndStandingOrderCommandHandler(c.lifecycleUoWFactory(), c.clock)
	return &h
}

func (c *CompositionRoot) CreateGenerateSchedulesCommandHandler() *commands.GenerateSchedulesCommandHandler {
	h := commands.NewGenerateSchedulesCommandHandler(c.generationUoWFactory(), c.generator, c.clock)
	return &h
}

func (c *CompositionRoot) CreateCompleteScheduleCommandHandler() *commands.CompleteScheduleCommandHandler {
	h := commands.NewCompleteScheduleCommandHandler(c.scheduleUoWFactory(), c.clock)
	return &h
}

func (c *CompositionRoot) CreateSkipScheduleCommandHandler() *commands.SkipScheduleCommandHandler {
	h := commands.NewSkipScheduleCommandHandler(c.scheduleUoWFactory(), c.clock)
	return &h
}

func (c *CompositionRoot) CreateGetScheduleViewQueryHandler() queries.GetScheduleViewQueryHandler {
	return queries.NewGetScheduleViewQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateGetStandingOrderQueryHandler() queries.GetStandingOrderQueryHandler {
	return queries.NewGetStandingOrderQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateListStandingOrdersQueryHandler() queries.ListStandingOrdersQueryHandler {
	return queries.NewListStandingOrdersQueryHandler(c.gormDB, c.clock)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	handlers := httpin.Handlers{
		CreateStandingOrder: c.CreateCreateStandingOrderCommandHandler(),
		EditStandingOrder:   c.CreateEditStandingOrderCommandHandler(),
		PauseStandingOrder:  c.CreatePauseStandingOrderCommandHandler(),
		ResumeStandingOrder: c.CreateResumeStandingOrderCommandHandler(),
		EndStandingOrder:    c.CreateEndStandingOrderCommandHandler(),
		GenerateSchedules:   c.CreateGenerateSchedulesCommandHandler(),
		CompleteSchedule:    c.CreateCompleteScheduleCommandHandler(),
		SkipSchedule:        c.CreateSkipScheduleCommandHandler(),
		GetScheduleView:     c.CreateGetScheduleViewQueryHandler(),
		GetStandingOrder:    c.CreateGetStandingOrderQueryHandler(),
		ListStandingOrders:  c.CreateListStandingOrdersQueryHandler(),
	}
	return httpin.NewServer(handlers, c.config.HorizonDays, c.scheduleMetrics, c.log)
}

// CreateJobManager wires the nightly sweep. A nil lock store disables the
// cross-replica lock.
func (c *CompositionRoot) CreateJobManager(lockStore jobs.LockStore) (*jobs.JobManager, error) {
	var lock jobs.Lock = jobs.NoopLock{}
	if lockStore != nil {
		redisLock, err := jobs.NewRedisLock(lockStore, jobs.ScheduleGenerationLockKey, c.config.GenerationLockTTL)
		if err != nil {
			return nil, err
		}
		lock = redisLock
	}

	generation, err := jobs.NewScheduleGenerationJob(jobs.ScheduleGenerationJobParams{
		Handler:         c.CreateGenerateSchedulesCommandHandler(),
		Spec:            c.config.GenerationCron,
		HorizonDays:     c.config.HorizonDays,
		Location:        c.location,
		Lock:            lock,
		JobMetrics:      c.jobMetrics,
		ScheduleMetrics: c.scheduleMetrics,
		Logger:          c.log,
	})
	if err != nil {
		return nil, err
	}

	return jobs.NewJobManager(c.log, generation), nil
}

type FuncLifecycleUoWFactory func() commands.LifecycleUoW

func (f FuncLifecycleUoWFactory) Create() commands.LifecycleUoW {
	return f()
}

type FuncScheduleUoWFactory func() commands.ScheduleUoW

func (f FuncScheduleUoWFactory) Create() commands.ScheduleUoW {
	return f()
}

type FuncGenerationUoWFactory func() commands.GenerationUoW

func (f FuncGenerationUoWFactory) Create() commands.GenerationUoW {
	return f()
}
