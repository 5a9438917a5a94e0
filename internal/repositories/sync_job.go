package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/marquee/internal/models"
	"github.com/desertthunder/marquee/internal/shared"
)

// SyncJobRepository implements [models.Repository] for [models.SyncJob] persistence
type SyncJobRepository struct {
	db *sql.DB
}

// NewSyncJobRepository creates a new [SyncJobRepository] with the given database connection
func NewSyncJobRepository(db *sql.DB) *SyncJobRepository {
	return &SyncJobRepository{db: db}
}

// Create inserts a new sync job into the database
func (r *SyncJobRepository) Create(job *models.SyncJob) error {
	sequence, err := NextSequence(r.db, "sync_jobs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	job.SetID(id)

	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO sync_jobs (id, sequence, account_email, status, favorites_total,
			favorites_synced, favorites_failed, error_message, started_at, completed_at,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query, id, sequence, job.AccountEmail(), string(job.Status()),
		job.Total(), job.Synced(), job.Failed(), nullString(job.ErrorMessage()),
		nullTime(job.StartedAt()), nullTime(job.CompletedAt()),
		job.CreatedAt(), job.UpdatedAt())
	if err != nil {
		return fmt.Errorf("failed to insert sync job: %w", err)
	}

	return nil
}

// Get retrieves a sync job by ID, excluding soft-deleted rows
func (r *SyncJobRepository) Get(id string) (*models.SyncJob, error) {
	query := `
		SELECT id, sequence, account_email, status, favorites_total, favorites_synced,
			favorites_failed, error_message, started_at, completed_at,
			created_at, updated_at, deleted_at
		FROM sync_jobs
		WHERE id = ? AND deleted_at IS NULL
	`

	job, err := scanSyncJob(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sync job not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query sync job: %w", err)
	}

	return job, nil
}

// Update persists the job's current status, counters and timestamps
func (r *SyncJobRepository) Update(job *models.SyncJob) error {
	if err := job.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	job.SetUpdatedAt(now)

	query := `
		UPDATE sync_jobs
		SET status = ?, favorites_total = ?, favorites_synced = ?, favorites_failed = ?,
			error_message = ?, started_at = ?, completed_at = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, string(job.Status()), job.Total(), job.Synced(),
		job.Failed(), nullString(job.ErrorMessage()), nullTime(job.StartedAt()),
		nullTime(job.CompletedAt()), now, job.ID())
	if err != nil {
		return fmt.Errorf("failed to update sync job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("sync job not found or already deleted: %s", job.ID())
	}

	return nil
}

// Delete soft-deletes a sync job by ID
func (r *SyncJobRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE sync_jobs
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete sync job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("sync job not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all sync jobs matching the given criteria, newest first
func (r *SyncJobRepository) List(criteria map[string]any) ([]*models.SyncJob, error) {
	query := `
		SELECT id, sequence, account_email, status, favorites_total, favorites_synced,
			favorites_failed, error_message, started_at, completed_at,
			created_at, updated_at, deleted_at
		FROM sync_jobs
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if email, ok := criteria["account_email"].(string); ok && email != "" {
		query += " AND account_email = ?"
		args = append(args, email)
	}

	if status, ok := criteria["status"].(string); ok && status != "" {
		query += " AND status = ?"
		args = append(args, status)
	}

	query += " ORDER BY sequence DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.SyncJob
	for rows.Next() {
		job, err := scanSyncJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sync job: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return jobs, nil
}

func scanSyncJob(s scanner) (*models.SyncJob, error) {
	var (
		id           string
		sequence     int
		accountEmail string
		status       string
		total        int
		synced       int
		failed       int
		errorMessage sql.NullString
		startedAt    sql.NullTime
		completedAt  sql.NullTime
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	if err := s.Scan(&id, &sequence, &accountEmail, &status, &total, &synced, &failed,
		&errorMessage, &startedAt, &completedAt, &createdAt, &updatedAt, &deletedAt); err != nil {
		return nil, err
	}

	job := models.NewSyncJob(sequence, accountEmail)
	job.SetID(id)
	job.SetCounters(total, synced, failed)
	job.SetStatus(models.SyncJobStatus(status), errorMessage.String,
		timePtr(startedAt), timePtr(completedAt))
	job.SetCreatedAt(createdAt)
	job.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		job.SetDeletedAt(&deletedAt.Time)
	}

	return job, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
