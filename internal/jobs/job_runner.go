package jobs

import (
	"database/sql"

	"leaguehq-backend/internal/config"
	"leaguehq-backend/internal/logger"
	"leaguehq-backend/internal/repository/postgres"
)

// JobRunner coordinates the scheduled cleanup jobs. Jobs are garbage
// collection only: expiry of invitations and suspensions is decided lazily at
// read/write time, so a job that never runs affects storage size, not
// correctness.
type JobRunner struct {
	db     *sql.DB
	store  *postgres.Store
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, cfg *config.Config) *JobRunner {
	return &JobRunner{
		db:     db,
		store:  store,
		config: cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllJobs runs every cleanup job once (for manual execution)
func (jr *JobRunner) RunAllJobs() {
	jr.PurgeResolvedInvitations()
}
