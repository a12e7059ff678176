package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/acadia-planner-api/internal/models"
)

func TestGenerateEndToEnd(t *testing.T) {
	now := time.Date(2026, time.March, 2, 7, 0, 0, 0, time.UTC)
	in := Input{
		Subjects: []models.Subject{{ID: "sub-1", UserID: "user-1", Name: "Calculus", Difficulty: 4}},
		Tasks: []models.StudyTask{
			pendingTask("task-1", "Integrals problem set", strPtr("sub-1"), 90, now.AddDate(0, 0, 2)),
			{
				ID: "task-done", UserID: "user-1", Title: "Old notes",
				TaskType: models.TaskTypeReading, DurationMinutes: 30,
				Deadline: now.AddDate(0, 0, 1), Status: models.TaskStatusCompleted,
			},
		},
		Availability: []models.AvailabilitySlot{
			{ID: "slot-1", UserID: "user-1", DayOfWeek: "MONDAY", StartMinute: 540, EndMinute: 660},
		},
		Preferences: models.StudyPreference{
			ID: "pref-1", UserID: "user-1", BreakLength: 10, BreakFrequency: 60,
		},
		Now: now,
	}

	result, err := Generate(in)
	require.NoError(t, err)

	assert.Equal(t, []Placement{
		{TaskID: "task-1", Day: 1, Start: 540, End: 600},
		{TaskID: "task-1", Day: 1, Start: 610, End: 640},
	}, result.Placements)
	assert.Equal(t, []BreakSlot{{Day: 1, Start: 600, End: 610}}, result.Breaks)
	assert.Empty(t, result.Unplaceable, "completed tasks must not compete for capacity")
}

func TestGenerateRejectsNonPositiveDuration(t *testing.T) {
	now := time.Now()
	in := Input{
		Tasks:       []models.StudyTask{pendingTask("task-bad", "Broken", nil, 0, now)},
		Preferences: models.DefaultStudyPreference("user-1"),
		Now:         now,
	}

	_, err := Generate(in)
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "task", invalid.Kind)
	assert.Equal(t, "task-bad", invalid.ID)
}

func TestGenerateRejectsMissingDeadline(t *testing.T) {
	in := Input{
		Tasks:       []models.StudyTask{pendingTask("task-bad", "Broken", nil, 60, time.Time{})},
		Preferences: models.DefaultStudyPreference("user-1"),
		Now:         time.Now(),
	}

	_, err := Generate(in)
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "deadline is required", invalid.Reason)
}

func TestGenerateRejectsInvalidPreferences(t *testing.T) {
	in := Input{
		Preferences: models.StudyPreference{ID: "pref-1", BreakFrequency: 0, BreakLength: 10},
		Now:         time.Now(),
	}

	_, err := Generate(in)
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "preferences", invalid.Kind)
}

func TestGenerateSurfacesSlotValidationError(t *testing.T) {
	now := time.Now()
	in := Input{
		Tasks: []models.StudyTask{pendingTask("task-1", "Reading", nil, 60, now.AddDate(0, 0, 3))},
		Availability: []models.AvailabilitySlot{
			{ID: "slot-bad", UserID: "user-1", DayOfWeek: "FUNDAY", StartMinute: 540, EndMinute: 600},
		},
		Preferences: models.DefaultStudyPreference("user-1"),
		Now:         now,
	}

	_, err := Generate(in)
	var invalid *InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "slot-bad", invalid.ID)
}

func TestGenerateEmptyWeek(t *testing.T) {
	now := time.Now()
	in := Input{
		Tasks:       []models.StudyTask{pendingTask("task-1", "Essay draft", nil, 120, now.AddDate(0, 0, 5))},
		Preferences: models.DefaultStudyPreference("user-1"),
		Now:         now,
	}

	result, err := Generate(in)
	require.NoError(t, err)
	assert.Empty(t, result.Placements)
	assert.Equal(t, []UnplacedTask{{TaskID: "task-1", RemainingMinutes: 120}}, result.Unplaceable)
}
