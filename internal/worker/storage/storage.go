package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/cuongbtq/resume-analyzer-be/internal/worker/domain"
)

// Storage handles all database operations for the worker
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{
		db:     db,
		logger: logger,
	}
}

// GetJobByID retrieves a job record by its ID
func (s *Storage) GetJobByID(ctx context.Context, jobID string) (*domain.Job, error) {
	query := `
		SELECT job_id, name, status, job_role, email, result, email_status, page_count
		FROM jobs
		WHERE job_id = $1
	`

	var (
		job         domain.Job
		jobRole     sql.NullString
		email       sql.NullString
		result      []byte
		emailStatus sql.NullString
		pageCount   sql.NullInt64
	)

	err := s.db.QueryRowContext(ctx, query, jobID).Scan(
		&job.JobID,
		&job.Name,
		&job.Status,
		&jobRole,
		&email,
		&result,
		&emailStatus,
		&pageCount,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	job.JobRole = jobRole.String
	job.Email = email.String
	job.Result = result
	job.EmailStatus = emailStatus.String
	job.PageCount = int(pageCount.Int64)

	return &job, nil
}

// UpdateStatus sets the job's status
func (s *Storage) UpdateStatus(ctx context.Context, jobID string, status domain.Status) error {
	query := `
		UPDATE jobs
		SET status = $1,
		    updated_at = NOW()
		WHERE job_id = $2
	`

	if _, err := s.db.ExecContext(ctx, query, status, jobID); err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}

	s.logger.Info("Job status updated",
		slog.String("job_id", jobID),
		slog.String("status", string(status)),
	)

	return nil
}

// SetConverted records a successful rasterization: status plus page count
func (s *Storage) SetConverted(ctx context.Context, jobID string, pageCount int) error {
	query := `
		UPDATE jobs
		SET status = $1,
		    page_count = $2,
		    updated_at = NOW()
		WHERE job_id = $3
	`

	if _, err := s.db.ExecContext(ctx, query, domain.StatusConverted, pageCount, jobID); err != nil {
		return fmt.Errorf("failed to record conversion: %w", err)
	}

	s.logger.Info("Job conversion recorded",
		slog.String("job_id", jobID),
		slog.Int("page_count", pageCount),
	)

	return nil
}

// SetResult persists the analysis result and marks the job completed.
// The result column is written at most once and never cleared.
func (s *Storage) SetResult(ctx context.Context, jobID string, result []byte) error {
	query := `
		UPDATE jobs
		SET status = $1,
		    result = COALESCE(result, $2),
		    updated_at = NOW()
		WHERE job_id = $3
	`

	if _, err := s.db.ExecContext(ctx, query, domain.StatusCompleted, result, jobID); err != nil {
		return fmt.Errorf("failed to persist result: %w", err)
	}

	s.logger.Info("Job result persisted",
		slog.String("job_id", jobID),
	)

	return nil
}

// SetEmailStatus records the notification outcome
func (s *Storage) SetEmailStatus(ctx context.Context, jobID, emailStatus string) error {
	query := `
		UPDATE jobs
		SET email_status = $1,
		    updated_at = NOW()
		WHERE job_id = $2
	`

	if _, err := s.db.ExecContext(ctx, query, emailStatus, jobID); err != nil {
		return fmt.Errorf("failed to record email status: %w", err)
	}

	return nil
}

// MarkFailed records a terminal failure with the stage that caused it
func (s *Storage) MarkFailed(ctx context.Context, jobID, stage, message string) error {
	query := `
		UPDATE jobs
		SET status = $1,
		    failed_stage = $2,
		    error_message = $3,
		    updated_at = NOW()
		WHERE job_id = $4
	`

	if _, err := s.db.ExecContext(ctx, query, domain.StatusFailed, stage, message, jobID); err != nil {
		return fmt.Errorf("failed to mark job failed: %w", err)
	}

	s.logger.Warn("Job marked failed",
		slog.String("job_id", jobID),
		slog.String("stage", stage),
	)

	return nil
}
