package service

import (
	"context"
	"database/sql"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/acadia-planner-api/internal/dto"
	"github.com/noah-isme/acadia-planner-api/internal/models"
	appErrors "github.com/noah-isme/acadia-planner-api/pkg/errors"
)

type taskRepository interface {
	List(ctx context.Context, userID string, filter models.TaskFilter) ([]models.StudyTask, int, error)
	FindByID(ctx context.Context, userID, id string) (*models.StudyTask, error)
	Create(ctx context.Context, task *models.StudyTask) error
	Update(ctx context.Context, task *models.StudyTask) error
	UpdateStatus(ctx context.Context, userID, id string, status models.TaskStatus) error
	Delete(ctx context.Context, userID, id string) error
	Progress(ctx context.Context, userID string) (*models.TaskProgress, error)
}

type taskSubjectRepository interface {
	FindByID(ctx context.Context, userID, id string) (*models.Subject, error)
}

// TaskService handles study task workflows scoped to one user.
type TaskService struct {
	repo      taskRepository
	subjects  taskSubjectRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTaskService creates a new task service.
func NewTaskService(repo taskRepository, subjects taskSubjectRepository, validate *validator.Validate, logger *zap.Logger) *TaskService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaskService{repo: repo, subjects: subjects, validator: validate, logger: logger}
}

// List returns the user's tasks with pagination metadata.
func (s *TaskService) List(ctx context.Context, userID string, filter models.TaskFilter) ([]models.StudyTask, *models.Pagination, error) {
	tasks, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list tasks")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return tasks, pagination, nil
}

// Get returns one of the user's tasks by identifier.
func (s *TaskService) Get(ctx context.Context, userID, id string) (*models.StudyTask, error) {
	task, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "task not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task")
	}
	return task, nil
}

// Create adds a new task in PENDING state.
func (s *TaskService) Create(ctx context.Context, userID string, req dto.CreateTaskRequest) (*models.StudyTask, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid task payload")
	}

	if err := s.checkSubjectRef(ctx, userID, req.SubjectID); err != nil {
		return nil, err
	}

	task := &models.StudyTask{
		UserID:          userID,
		SubjectID:       req.SubjectID,
		Title:           strings.TrimSpace(req.Title),
		TaskType:        models.TaskType(req.TaskType),
		DurationMinutes: req.DurationMinutes,
		Deadline:        req.Deadline,
		Status:          models.TaskStatusPending,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create task")
	}
	return task, nil
}

// Update modifies an existing task. Editing a scheduled task reverts it to
// PENDING so the next generation re-places it.
func (s *TaskService) Update(ctx context.Context, userID, id string, req dto.UpdateTaskRequest) (*models.StudyTask, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid task payload")
	}

	task, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.checkSubjectRef(ctx, userID, req.SubjectID); err != nil {
		return nil, err
	}

	task.SubjectID = req.SubjectID
	task.Title = strings.TrimSpace(req.Title)
	task.TaskType = models.TaskType(req.TaskType)
	task.DurationMinutes = req.DurationMinutes
	task.Deadline = req.Deadline
	if task.Status == models.TaskStatusScheduled {
		task.Status = models.TaskStatusPending
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update task")
	}
	return task, nil
}

// Complete marks a task as done. Completed tasks never re-enter scheduling.
func (s *TaskService) Complete(ctx context.Context, userID, id string) (*models.StudyTask, error) {
	task, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if task.Status == models.TaskStatusCompleted {
		return task, nil
	}

	if err := s.repo.UpdateStatus(ctx, userID, id, models.TaskStatusCompleted); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to complete task")
	}
	task.Status = models.TaskStatusCompleted
	return task, nil
}

// Delete removes a task owned by the user.
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete task")
	}
	return nil
}

// Progress returns per-status counts of the user's tasks.
func (s *TaskService) Progress(ctx context.Context, userID string) (*models.TaskProgress, error) {
	progress, err := s.repo.Progress(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load task progress")
	}
	return progress, nil
}

func (s *TaskService) checkSubjectRef(ctx context.Context, userID string, subjectID *string) error {
	if subjectID == nil || *subjectID == "" {
		return nil
	}
	if _, err := s.subjects.FindByID(ctx, userID, *subjectID); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrValidation, "referenced subject does not exist")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subject reference")
	}
	return nil
}
