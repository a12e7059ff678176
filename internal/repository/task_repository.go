package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/acadia-planner-api/internal/models"
)

// TaskRepository handles persistence for study tasks.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new repository instance.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// List returns a user's tasks matching filters with pagination metadata.
// Subject names are joined in for display.
func (r *TaskRepository) List(ctx context.Context, userID string, filter models.TaskFilter) ([]models.StudyTask, int, error) {
	base := "FROM study_tasks t LEFT JOIN subjects s ON s.id = t.subject_id WHERE t.user_id = $1"
	args := []interface{}{userID}

	if filter.SubjectID != "" {
		base += fmt.Sprintf(" AND t.subject_id = $%d", len(args)+1)
		args = append(args, filter.SubjectID)
	}
	if filter.Status != "" {
		base += fmt.Sprintf(" AND t.status = $%d", len(args)+1)
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		base += fmt.Sprintf(" AND LOWER(t.title) LIKE $%d", len(args)+1)
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	sortBy := filter.SortBy
	allowedSorts := map[string]bool{
		"title":            true,
		"deadline":         true,
		"duration_minutes": true,
		"status":           true,
		"created_at":       true,
		"updated_at":       true,
	}
	if !allowedSorts[sortBy] {
		sortBy = "deadline"
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT t.id, t.user_id, t.subject_id, t.title, t.task_type, t.duration_minutes, t.deadline, t.status, t.created_at, t.updated_at, COALESCE(s.name, '') AS subject_name %s ORDER BY t.%s %s LIMIT %d OFFSET %d", base, sortBy, order, size, offset)
	var tasks []models.StudyTask
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	return tasks, total, nil
}

// ListByUser returns every task a user owns, unpaginated, for scheduling.
func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]models.StudyTask, error) {
	const query = `SELECT id, user_id, subject_id, title, task_type, duration_minutes, deadline, status, created_at, updated_at FROM study_tasks WHERE user_id = $1 ORDER BY deadline ASC, title ASC`
	var tasks []models.StudyTask
	if err := r.db.SelectContext(ctx, &tasks, query, userID); err != nil {
		return nil, fmt.Errorf("list tasks by user: %w", err)
	}
	return tasks, nil
}

// FindByID returns a task owned by the user.
func (r *TaskRepository) FindByID(ctx context.Context, userID, id string) (*models.StudyTask, error) {
	const query = `SELECT id, user_id, subject_id, title, task_type, duration_minutes, deadline, status, created_at, updated_at FROM study_tasks WHERE id = $1 AND user_id = $2`
	var task models.StudyTask
	if err := r.db.GetContext(ctx, &task, query, id, userID); err != nil {
		return nil, err
	}
	return &task, nil
}

// Create persists a new task.
func (r *TaskRepository) Create(ctx context.Context, task *models.StudyTask) error {
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	task.UpdatedAt = now

	const query = `INSERT INTO study_tasks (id, user_id, subject_id, title, task_type, duration_minutes, deadline, status, created_at, updated_at) VALUES (:id, :user_id, :subject_id, :title, :task_type, :duration_minutes, :deadline, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

// Update modifies a task.
func (r *TaskRepository) Update(ctx context.Context, task *models.StudyTask) error {
	task.UpdatedAt = time.Now().UTC()
	const query = `UPDATE study_tasks SET subject_id = :subject_id, title = :title, task_type = :task_type, duration_minutes = :duration_minutes, deadline = :deadline, status = :status, updated_at = :updated_at WHERE id = :id AND user_id = :user_id`
	if _, err := r.db.NamedExecContext(ctx, query, task); err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

// UpdateStatus changes the lifecycle status of one task.
func (r *TaskRepository) UpdateStatus(ctx context.Context, userID, id string, status models.TaskStatus) error {
	const query = `UPDATE study_tasks SET status = $3, updated_at = $4 WHERE id = $1 AND user_id = $2`
	if _, err := r.db.ExecContext(ctx, query, id, userID, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("update task status: %w", err)
	}
	return nil
}

// MarkScheduled flips the given pending tasks to SCHEDULED using the
// provided executor so it can join a materialization transaction.
func (r *TaskRepository) MarkScheduled(ctx context.Context, exec sqlx.ExtContext, userID string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query, args, err := sqlx.In(`UPDATE study_tasks SET status = ?, updated_at = ? WHERE user_id = ? AND id IN (?)`, models.TaskStatusScheduled, time.Now().UTC(), userID, ids)
	if err != nil {
		return fmt.Errorf("build mark scheduled query: %w", err)
	}
	if _, err := exec.ExecContext(ctx, exec.Rebind(query), args...); err != nil {
		return fmt.Errorf("mark tasks scheduled: %w", err)
	}
	return nil
}

// ResetScheduled reverts previously scheduled tasks to PENDING within the
// same transaction that wipes their blocks, so a regenerate starts clean.
func (r *TaskRepository) ResetScheduled(ctx context.Context, exec sqlx.ExtContext, userID string) error {
	const query = `UPDATE study_tasks SET status = $2, updated_at = $3 WHERE user_id = $1 AND status = $4`
	if _, err := exec.ExecContext(ctx, query, userID, models.TaskStatusPending, time.Now().UTC(), models.TaskStatusScheduled); err != nil {
		return fmt.Errorf("reset scheduled tasks: %w", err)
	}
	return nil
}

// ClearSubject nulls subject references on tasks when a subject is removed.
func (r *TaskRepository) ClearSubject(ctx context.Context, userID, subjectID string) error {
	const query = `UPDATE study_tasks SET subject_id = NULL, updated_at = $3 WHERE user_id = $1 AND subject_id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, subjectID, time.Now().UTC()); err != nil {
		return fmt.Errorf("clear task subject: %w", err)
	}
	return nil
}

// Delete removes a task owned by the user.
func (r *TaskRepository) Delete(ctx context.Context, userID, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM study_tasks WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// Progress returns per-status task counts for a user.
func (r *TaskRepository) Progress(ctx context.Context, userID string) (*models.TaskProgress, error) {
	const query = `SELECT
		COUNT(*) FILTER (WHERE status = 'PENDING') AS pending,
		COUNT(*) FILTER (WHERE status = 'SCHEDULED') AS scheduled,
		COUNT(*) FILTER (WHERE status = 'COMPLETED') AS completed
	FROM study_tasks WHERE user_id = $1`
	var progress models.TaskProgress
	if err := r.db.GetContext(ctx, &progress, query, userID); err != nil {
		return nil, fmt.Errorf("task progress: %w", err)
	}
	return &progress, nil
}
