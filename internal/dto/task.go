package dto

import "time"

// CreateTaskRequest defines payload for adding a study task.
type CreateTaskRequest struct {
	SubjectID       *string   `json:"subjectId,omitempty" validate:"omitempty,uuid4"`
	Title           string    `json:"title" validate:"required,max=256"`
	TaskType        string    `json:"taskType" validate:"required,oneof=REVIEW PROBLEM_SET ESSAY_DRAFT READING PROJECT_WORK EXAM_PREP"`
	DurationMinutes int       `json:"durationMinutes" validate:"required,min=1,max=10080"`
	Deadline        time.Time `json:"deadline" validate:"required"`
}

// UpdateTaskRequest defines payload for modifying a study task.
type UpdateTaskRequest struct {
	SubjectID       *string   `json:"subjectId,omitempty" validate:"omitempty,uuid4"`
	Title           string    `json:"title" validate:"required,max=256"`
	TaskType        string    `json:"taskType" validate:"required,oneof=REVIEW PROBLEM_SET ESSAY_DRAFT READING PROJECT_WORK EXAM_PREP"`
	DurationMinutes int       `json:"durationMinutes" validate:"required,min=1,max=10080"`
	Deadline        time.Time `json:"deadline" validate:"required"`
}
