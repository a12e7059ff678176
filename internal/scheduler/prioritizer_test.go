package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/acadia-planner-api/internal/models"
)

var rankNow = time.Date(2026, time.March, 2, 8, 0, 0, 0, time.UTC) // a Monday

func pendingTask(id, title string, subjectID *string, duration int, deadline time.Time) models.StudyTask {
	return models.StudyTask{
		ID:              id,
		UserID:          "user-1",
		SubjectID:       subjectID,
		Title:           title,
		TaskType:        models.TaskTypeReview,
		DurationMinutes: duration,
		Deadline:        deadline,
		Status:          models.TaskStatusPending,
	}
}

func strPtr(s string) *string { return &s }

func TestRankDeadlineDominatesDifficulty(t *testing.T) {
	subjects := []models.Subject{
		{ID: "sub-easy", Difficulty: 1},
		{ID: "sub-hard", Difficulty: 5},
	}
	tasks := []models.StudyTask{
		pendingTask("task-hard", "Hard but distant", strPtr("sub-hard"), 60, rankNow.AddDate(0, 0, 10)),
		pendingTask("task-soon", "Easy but urgent", strPtr("sub-easy"), 60, rankNow.AddDate(0, 0, 1)),
	}

	ranked := Rank(tasks, subjects, rankNow)
	require.Len(t, ranked, 2)
	assert.Equal(t, "task-soon", ranked[0].Task.ID)
	assert.Greater(t, ranked[0].Score, ranked[1].Score)
}

func TestRankOverdueTreatedAsMaxUrgency(t *testing.T) {
	tasks := []models.StudyTask{
		pendingTask("task-overdue", "Late essay", nil, 60, rankNow.AddDate(0, 0, -3)),
		pendingTask("task-distant", "Future reading", nil, 60, rankNow.AddDate(0, 0, 14)),
	}

	ranked := Rank(tasks, nil, rankNow)
	assert.Equal(t, "task-overdue", ranked[0].Task.ID)
}

func TestRankDefaultsDifficultyWithoutSubject(t *testing.T) {
	ranked := Rank([]models.StudyTask{
		pendingTask("task-1", "General notes", nil, 30, rankNow.AddDate(0, 0, 2)),
	}, nil, rankNow)

	require.Len(t, ranked, 1)
	assert.Equal(t, models.MinDifficulty, ranked[0].Difficulty)
}

func TestRankTieBreaksOnTitleThenID(t *testing.T) {
	deadline := rankNow.AddDate(0, 0, 3)
	tasks := []models.StudyTask{
		pendingTask("task-c", "Beta problems", nil, 30, deadline),
		pendingTask("task-b", "Alpha review", nil, 30, deadline),
		pendingTask("task-a", "Beta problems", nil, 30, deadline),
	}

	ranked := Rank(tasks, nil, rankNow)
	require.Len(t, ranked, 3)
	assert.Equal(t, "task-b", ranked[0].Task.ID)
	assert.Equal(t, "task-a", ranked[1].Task.ID)
	assert.Equal(t, "task-c", ranked[2].Task.ID)
}

func TestRankScoreComposition(t *testing.T) {
	subjects := []models.Subject{{ID: "sub-1", Difficulty: 4}}
	ranked := Rank([]models.StudyTask{
		pendingTask("task-1", "Calc problems", strPtr("sub-1"), 45, rankNow.AddDate(0, 0, 5)),
	}, subjects, rankNow)

	require.Len(t, ranked, 1)
	assert.InDelta(t, weightDeadline/5+weightDifficulty*4, ranked[0].Score, 1e-9)
}
