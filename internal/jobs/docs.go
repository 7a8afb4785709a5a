// Package jobs runs scheduled background work for the standing order service.
//
// Jobs are cron driven (github.com/robfig/cron/v3, six field specs with
// seconds) and managed together by JobManager:
//
//	manager := jobs.NewJobManager(log, generationJob)
//	if err := manager.StartAll(); err != nil {
//		log.Fatal("failed to start jobs:", err)
//	}
//	defer manager.StopAll()
//
// # Available Jobs
//
// ScheduleGenerationJob extends the schedule horizon of every active standing
// order. A Redis lock (SETNX with TTL) keeps replicas from sweeping at the
// same time; without Redis the lock is a no-op, which is still safe because
// schedule inserts are idempotent.
//
// # Error Handling
//
// A sweep generates each order in its own transaction. Failed orders are
// reported together once the sweep ends; they never undo the others.
package jobs
