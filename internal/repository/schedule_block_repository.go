package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/acadia-planner-api/internal/models"
)

// ScheduleBlockRepository handles persistence for materialized schedule
// blocks and generation run records.
type ScheduleBlockRepository struct {
	db *sqlx.DB
}

// NewScheduleBlockRepository creates a new repository instance.
func NewScheduleBlockRepository(db *sqlx.DB) *ScheduleBlockRepository {
	return &ScheduleBlockRepository{db: db}
}

// DB exposes the underlying handle so services can open a transaction
// spanning multiple repositories.
func (r *ScheduleBlockRepository) DB() *sqlx.DB {
	return r.db
}

// ListByUser returns a user's current schedule with task and subject names
// joined in, ordered Monday through Sunday then by start minute.
func (r *ScheduleBlockRepository) ListByUser(ctx context.Context, userID string) ([]models.ScheduleBlock, error) {
	const query = `SELECT b.id, b.user_id, b.task_id, b.day_of_week, b.start_minute, b.end_minute, b.created_at,
		t.title AS task_title, COALESCE(s.name, '') AS subject_name
	FROM schedule_blocks b
	JOIN study_tasks t ON t.id = b.task_id
	LEFT JOIN subjects s ON s.id = t.subject_id
	WHERE b.user_id = $1
	ORDER BY CASE b.day_of_week
		WHEN 'MONDAY' THEN 1 WHEN 'TUESDAY' THEN 2 WHEN 'WEDNESDAY' THEN 3 WHEN 'THURSDAY' THEN 4
		WHEN 'FRIDAY' THEN 5 WHEN 'SATURDAY' THEN 6 ELSE 7 END, b.start_minute ASC`
	var blocks []models.ScheduleBlock
	if err := r.db.SelectContext(ctx, &blocks, query, userID); err != nil {
		return nil, fmt.Errorf("list schedule blocks: %w", err)
	}
	return blocks, nil
}

// DeleteByUser wipes a user's schedule using the provided executor so it
// can join a materialization transaction.
func (r *ScheduleBlockRepository) DeleteByUser(ctx context.Context, exec sqlx.ExtContext, userID string) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM schedule_blocks WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete schedule blocks: %w", err)
	}
	return nil
}

// BulkInsert writes blocks using the provided executor.
func (r *ScheduleBlockRepository) BulkInsert(ctx context.Context, exec sqlx.ExtContext, blocks []models.ScheduleBlock) error {
	now := time.Now().UTC()
	for i := range blocks {
		payload := blocks[i]
		if payload.ID == "" {
			payload.ID = uuid.NewString()
		}
		if payload.CreatedAt.IsZero() {
			payload.CreatedAt = now
		}

		if _, err := sqlx.NamedExecContext(ctx, exec, `INSERT INTO schedule_blocks (id, user_id, task_id, day_of_week, start_minute, end_minute, created_at) VALUES (:id, :user_id, :task_id, :day_of_week, :start_minute, :end_minute, :created_at)`, &payload); err != nil {
			return fmt.Errorf("insert schedule block: %w", err)
		}
		blocks[i] = payload
	}
	return nil
}

// CreateGenerationRun records the outcome of one generation within the
// materialization transaction.
func (r *ScheduleBlockRepository) CreateGenerationRun(ctx context.Context, exec sqlx.ExtContext, run *models.GenerationRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	if _, err := sqlx.NamedExecContext(ctx, exec, `INSERT INTO generation_runs (id, user_id, placed_count, unplaced_count, meta, created_at) VALUES (:id, :user_id, :placed_count, :unplaced_count, :meta, :created_at)`, run); err != nil {
		return fmt.Errorf("create generation run: %w", err)
	}
	return nil
}

// LatestGenerationRun returns the most recent run for a user, or
// sql.ErrNoRows when no schedule was ever generated.
func (r *ScheduleBlockRepository) LatestGenerationRun(ctx context.Context, userID string) (*models.GenerationRun, error) {
	const query = `SELECT id, user_id, placed_count, unplaced_count, meta, created_at FROM generation_runs WHERE user_id = $1 ORDER BY created_at DESC LIMIT 1`
	var run models.GenerationRun
	if err := r.db.GetContext(ctx, &run, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("latest generation run: %w", err)
	}
	return &run, nil
}
