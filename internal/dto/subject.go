package dto

import "time"

// CreateSubjectRequest defines payload for adding a subject.
type CreateSubjectRequest struct {
	Name       string     `json:"name" validate:"required,max=128"`
	Difficulty int        `json:"difficulty" validate:"required,min=1,max=5"`
	ExamDate   *time.Time `json:"examDate,omitempty"`
}

// UpdateSubjectRequest defines payload for modifying a subject.
type UpdateSubjectRequest struct {
	Name       string     `json:"name" validate:"required,max=128"`
	Difficulty int        `json:"difficulty" validate:"required,min=1,max=5"`
	ExamDate   *time.Time `json:"examDate,omitempty"`
}
