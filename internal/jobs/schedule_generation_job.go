package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"standingorders/internal/core/application/usecases/commands"
	"standingorders/internal/pkg/logger"
	"standingorders/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

const (
	ScheduleGenerationJobName = "schedule_generation"

	// DefaultScheduleGenerationSpec runs the sweep every night at 01:15.
	DefaultScheduleGenerationSpec = "0 15 1 * * *"

	ScheduleGenerationLockKey = "standingorders:lock:schedule_generation"
)

type GenerateSchedulesHandler interface {
	Handle(ctx context.Context, cmd commands.GenerateSchedulesCommand) (int, error)
}

type ScheduleGenerationJobParams struct {
	Handler         GenerateSchedulesHandler
	Spec            string
	HorizonDays     int
	Location        *time.Location
	Lock            Lock
	JobMetrics      *metrics.JobMetrics
	ScheduleMetrics *metrics.ScheduleMetrics
	Logger          *logger.Logger
}

// ScheduleGenerationJob extends the horizon of every active standing order
// on a cron schedule.
type ScheduleGenerationJob struct {
	handler         GenerateSchedulesHandler
	spec            string
	horizonDays     int
	lock            Lock
	jobMetrics      *metrics.JobMetrics
	scheduleMetrics *metrics.ScheduleMetrics
	log             *logger.Logger
	cron            *cron.Cron
}

func NewScheduleGenerationJob(params ScheduleGenerationJobParams) (*ScheduleGenerationJob, error) {
	if params.Handler == nil {
		return nil, errors.New("schedule generation handler is required")
	}
	spec := params.Spec
	if spec == "" {
		spec = DefaultScheduleGenerationSpec
	}
	location := params.Location
	if location == nil {
		location = time.UTC
	}
	lock := params.Lock
	if lock == nil {
		lock = NoopLock{}
	}
	log := params.Logger
	if log == nil {
		log = logger.Nop()
	}

	return &ScheduleGenerationJob{
		handler:         params.Handler,
		spec:            spec,
		horizonDays:     params.HorizonDays,
		lock:            lock,
		jobMetrics:      params.JobMetrics,
		scheduleMetrics: params.ScheduleMetrics,
		log:             log,
		cron:            cron.New(cron.WithSeconds(), cron.WithLocation(location)),
	}, nil
}

func (j *ScheduleGenerationJob) Name() string {
	return ScheduleGenerationJobName
}

// Run performs one sweep. It returns nil without doing anything when
// another replica holds the lock.
func (j *ScheduleGenerationJob) Run(ctx context.Context) error {
	ctx = j.log.WithFields(ctx, map[string]any{
		"component": "jobs",
		"job":       ScheduleGenerationJobName,
	})

	acquired, err := j.lock.Acquire(ctx)
	if err != nil {
		j.jobMetrics.IncFailure(ScheduleGenerationJobName)
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !acquired {
		j.log.Info(ctx, "sweep skipped, lock held elsewhere")
		return nil
	}
	defer func() {
		if err := j.lock.Release(ctx); err != nil {
			j.log.Warn(ctx, "release lock", err)
		}
	}()

	cmd, err := commands.NewGenerateAllSchedulesCommand(j.horizonDays)
	if err != nil {
		j.jobMetrics.IncFailure(ScheduleGenerationJobName)
		return err
	}

	j.log.Info(ctx, "sweep started")
	start := time.Now()

	created, err := j.handler.Handle(ctx, cmd)
	j.scheduleMetrics.AddGenerated("sweep", created)
	j.jobMetrics.ObserveDuration(ScheduleGenerationJobName, time.Since(start))

	ctx = j.log.WithField(ctx, "created", created)
	if err != nil {
		j.jobMetrics.IncFailure(ScheduleGenerationJobName)
		j.log.Error(ctx, "sweep finished with failures", err)
		return err
	}

	j.jobMetrics.IncSuccess(ScheduleGenerationJobName)
	j.log.Info(ctx, "sweep finished")
	return nil
}

// Start registers the sweep with cron and starts the scheduler.
func (j *ScheduleGenerationJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		_ = j.Run(context.Background())
	})
	if err != nil {
		return fmt.Errorf("schedule %q: %w", j.spec, err)
	}

	j.cron.Start()
	j.log.Info(j.log.WithField(context.Background(), "spec", j.spec), "schedule generation job started")
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *ScheduleGenerationJob) Stop() {
	<-j.cron.Stop().Done()
	j.log.Info(context.Background(), "schedule generation job stopped")
}
