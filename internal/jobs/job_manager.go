package jobs

import (
	"context"
	"fmt"

	"standingorders/internal/pkg/logger"
)

// Job is a background task driven by its own cron scheduler.
type Job interface {
	Name() string
	Start() error
	Stop()
	Run(ctx context.Context) error
}

// JobManager starts and stops all scheduled jobs together.
type JobManager struct {
	jobs []Job
	log  *logger.Logger
}

func NewJobManager(log *logger.Logger, jobs ...Job) *JobManager {
	if log == nil {
		log = logger.Nop()
	}
	return &JobManager{jobs: jobs, log: log}
}

// StartAll starts every job. If one fails to start the ones already
// started are stopped again.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			for _, started := range jm.jobs[:i] {
				started.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", job.Name(), err)
		}
	}
	return nil
}

// RunAll runs every job once, in order. Failures are logged and do not stop
// the remaining jobs.
func (jm *JobManager) RunAll(ctx context.Context) {
	for _, job := range jm.jobs {
		if err := job.Run(ctx); err != nil {
			jm.log.Error(jm.log.WithField(ctx, "job", job.Name()), "job run failed", err)
		}
	}
}

// StopAll stops every job and waits for running ones to finish.
func (jm *JobManager) StopAll() {
	for _, job := range jm.jobs {
		job.Stop()
	}
}
