package dto

import "time"

// ScheduleBlockView is one placed study block in API responses.
type ScheduleBlockView struct {
	ID          string `json:"id,omitempty"`
	TaskID      string `json:"taskId"`
	TaskTitle   string `json:"taskTitle,omitempty"`
	SubjectName string `json:"subjectName,omitempty"`
	DayOfWeek   string `json:"dayOfWeek"`
	StartMinute int    `json:"startMinute"`
	EndMinute   int    `json:"endMinute"`
}

// BreakView is one inserted rest period in API responses.
type BreakView struct {
	DayOfWeek   string `json:"dayOfWeek"`
	StartMinute int    `json:"startMinute"`
	EndMinute   int    `json:"endMinute"`
}

// UnplacedTaskView reports a task that did not fully fit the week.
type UnplacedTaskView struct {
	TaskID           string `json:"taskId"`
	Title            string `json:"title,omitempty"`
	RemainingMinutes int    `json:"remainingMinutes"`
}

// GenerateScheduleResponse returns the materialized weekly plan.
type GenerateScheduleResponse struct {
	Blocks      []ScheduleBlockView `json:"blocks"`
	Breaks      []BreakView         `json:"breaks"`
	Unplaceable []UnplacedTaskView  `json:"unplaceable"`
	PlacedCount int                 `json:"placedCount"`
	GeneratedAt time.Time           `json:"generatedAt"`
}

// DaySchedule groups one weekday's blocks for the grid view.
type DaySchedule struct {
	Day       int                 `json:"day"`
	DayOfWeek string              `json:"dayOfWeek"`
	Blocks    []ScheduleBlockView `json:"blocks"`
}

// WeeklyScheduleResponse is the seven-day grid of the stored schedule.
type WeeklyScheduleResponse struct {
	Days        []DaySchedule `json:"days"`
	TotalBlocks int           `json:"totalBlocks"`
	GeneratedAt *time.Time    `json:"generatedAt,omitempty"`
}
