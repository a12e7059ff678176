package scheduler

import (
	"sort"
	"time"

	"github.com/noah-isme/acadia-planner-api/internal/models"
)

// RankedTask pairs a task with its resolved difficulty and priority score.
type RankedTask struct {
	Task       models.StudyTask
	Difficulty int
	Score      float64
}

// Rank orders pending tasks by composite priority: deadline urgency weighted
// against subject difficulty, urgency dominating. Tasks without a subject
// fall back to the minimum difficulty. Ties break on title, then id, so the
// ordering is a strict total order and runs are reproducible.
func Rank(tasks []models.StudyTask, subjects []models.Subject, now time.Time) []RankedTask {
	difficulties := make(map[string]int, len(subjects))
	for _, subject := range subjects {
		difficulties[subject.ID] = subject.Difficulty
	}

	ranked := make([]RankedTask, 0, len(tasks))
	for _, task := range tasks {
		difficulty := models.MinDifficulty
		if task.SubjectID != nil {
			if d, ok := difficulties[*task.SubjectID]; ok {
				difficulty = d
			}
		}
		ranked = append(ranked, RankedTask{
			Task:       task,
			Difficulty: difficulty,
			Score:      weightDeadline*urgency(task.Deadline, now) + weightDifficulty*float64(difficulty),
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if ranked[i].Task.Title != ranked[j].Task.Title {
			return ranked[i].Task.Title < ranked[j].Task.Title
		}
		return ranked[i].Task.ID < ranked[j].Task.ID
	})
	return ranked
}

// urgency is the inverse of whole days remaining until the deadline.
// Overdue deadlines clamp to zero days, i.e. maximum urgency, so late
// tasks are never deprioritised.
func urgency(deadline, now time.Time) float64 {
	days := daysUntil(deadline, now)
	if days < 1 {
		days = 1
	}
	return 1 / float64(days)
}

func daysUntil(deadline, now time.Time) int {
	d := date(deadline)
	n := date(now)
	days := int(d.Sub(n).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
