package models

import (
	"fmt"
	"time"
)

// SyncJobStatus enumerates the lifecycle states of a favorites sync job.
type SyncJobStatus string

const (
	SyncPending   SyncJobStatus = "pending"
	SyncRunning   SyncJobStatus = "running"
	SyncCompleted SyncJobStatus = "completed"
	SyncFailed    SyncJobStatus = "failed"
)

// SyncJob tracks one replay of legacy local favorites into the remote
// document store for a given account.
type SyncJob struct {
	base
	accountEmail string
	status       SyncJobStatus
	total        int
	synced       int
	failed       int
	errorMessage string
	startedAt    *time.Time
	completedAt  *time.Time
}

// NewSyncJob creates a pending sync job for the given account.
func NewSyncJob(sequence int, accountEmail string) *SyncJob {
	return &SyncJob{
		base:         newBase(sequence),
		accountEmail: accountEmail,
		status:       SyncPending,
	}
}

func (j *SyncJob) AccountEmail() string    { return j.accountEmail }
func (j *SyncJob) Status() SyncJobStatus   { return j.status }
func (j *SyncJob) Total() int              { return j.total }
func (j *SyncJob) Synced() int             { return j.synced }
func (j *SyncJob) Failed() int             { return j.failed }
func (j *SyncJob) ErrorMessage() string    { return j.errorMessage }
func (j *SyncJob) StartedAt() *time.Time   { return j.startedAt }
func (j *SyncJob) CompletedAt() *time.Time { return j.completedAt }

// Start marks the job running and records the start time.
func (j *SyncJob) Start(total int) {
	now := time.Now()
	j.status = SyncRunning
	j.total = total
	j.startedAt = &now
}

// Complete marks the job finished with the final counters.
func (j *SyncJob) Complete(synced, failed int) {
	now := time.Now()
	j.status = SyncCompleted
	j.synced = synced
	j.failed = failed
	j.completedAt = &now
}

// Fail marks the job failed with the given message.
func (j *SyncJob) Fail(message string) {
	now := time.Now()
	j.status = SyncFailed
	j.errorMessage = message
	j.completedAt = &now
}

// SetCounters restores counters when loading from the database.
func (j *SyncJob) SetCounters(total, synced, failed int) {
	j.total = total
	j.synced = synced
	j.failed = failed
}

// SetStatus restores status fields when loading from the database.
func (j *SyncJob) SetStatus(status SyncJobStatus, errorMessage string, startedAt, completedAt *time.Time) {
	j.status = status
	j.errorMessage = errorMessage
	j.startedAt = startedAt
	j.completedAt = completedAt
}

// Validate checks the account email and status value.
func (j *SyncJob) Validate() error {
	if j.accountEmail == "" {
		return fmt.Errorf("sync job requires an account email")
	}
	switch j.status {
	case SyncPending, SyncRunning, SyncCompleted, SyncFailed:
	default:
		return fmt.Errorf("unknown sync job status: %q", string(j.status))
	}
	if j.synced+j.failed > j.total {
		return fmt.Errorf("sync counters exceed total: %d+%d > %d", j.synced, j.failed, j.total)
	}
	return nil
}
