// Package scheduler implements the weekly study-plan allocation engine.
//
// The engine is a pure, sequential computation: it takes a snapshot of a
// user's subjects, pending tasks, weekly availability and break preferences,
// and produces a conflict-free assignment of task work blocks to free time.
// Identical inputs always produce identical output.
package scheduler

import (
	"fmt"
	"time"

	"github.com/noah-isme/acadia-planner-api/internal/models"
)

// Engine tuning constants. Deadline weight intentionally exceeds difficulty
// weight so deadline proximity always dominates the priority ordering.
const (
	// MinWorkQuantum is the smallest placeable amount of work in minutes.
	MinWorkQuantum = 15
	// MaxBlockLength caps a single contiguous study block in minutes.
	MaxBlockLength = 120

	weightDeadline   = 10.0
	weightDifficulty = 1.0
)

// FreeInterval is a decomposed, placeable sub-range of an availability slot.
// Derived fresh per run, never persisted. Day is 1-based, Monday first.
type FreeInterval struct {
	Day   int
	Start int
	End   int
}

// Minutes returns the interval's capacity.
func (f FreeInterval) Minutes() int {
	return f.End - f.Start
}

// Placement is one contiguous block of a task's work assigned to a day.
type Placement struct {
	TaskID string
	Day    int
	Start  int
	End    int
}

// BreakSlot records an inserted rest period that consumed capacity.
type BreakSlot struct {
	Day   int
	Start int
	End   int
}

// UnplacedTask identifies a task whose duration could not be fully covered.
type UnplacedTask struct {
	TaskID           string
	RemainingMinutes int
}

// Input is the snapshot a single run operates on.
type Input struct {
	Subjects     []models.Subject
	Tasks        []models.StudyTask
	Availability []models.AvailabilitySlot
	Preferences  models.StudyPreference
	Now          time.Time
}

// Result is the outcome of one run. Placements and Breaks are emitted in
// deterministic order; Unplaceable lists tasks still holding outstanding
// minutes after all capacity was exhausted.
type Result struct {
	Placements  []Placement
	Breaks      []BreakSlot
	Unplaceable []UnplacedTask
}

// InvalidInputError identifies the exact record that failed pre-run validation.
type InvalidInputError struct {
	Kind   string
	ID     string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s %s: %s", e.Kind, e.ID, e.Reason)
}

// Generate runs the full pipeline: validate, decompose availability into
// free intervals, rank pending tasks, and allocate blocks. It returns an
// *InvalidInputError before any allocation happens when a record is malformed.
func Generate(in Input) (*Result, error) {
	if err := validateTasks(in.Tasks); err != nil {
		return nil, err
	}
	if in.Preferences.BreakFrequency <= 0 {
		return nil, &InvalidInputError{Kind: "preferences", ID: in.Preferences.ID, Reason: "break frequency must be positive"}
	}
	if in.Preferences.BreakLength < 0 {
		return nil, &InvalidInputError{Kind: "preferences", ID: in.Preferences.ID, Reason: "break length must not be negative"}
	}

	intervals, err := DecomposeSlots(in.Availability)
	if err != nil {
		return nil, err
	}

	// Only pending tasks are ever allocated; anything else in the snapshot
	// is a caller mistake and is ignored rather than re-scheduled.
	pending := make([]models.StudyTask, 0, len(in.Tasks))
	for _, task := range in.Tasks {
		if task.Status == models.TaskStatusPending {
			pending = append(pending, task)
		}
	}

	ranked := Rank(pending, in.Subjects, in.Now)
	result := Allocate(intervals, ranked, in.Preferences)
	return result, nil
}

func validateTasks(tasks []models.StudyTask) error {
	for _, task := range tasks {
		if task.DurationMinutes <= 0 {
			return &InvalidInputError{Kind: "task", ID: task.ID, Reason: "duration must be a positive number of minutes"}
		}
		if task.Deadline.IsZero() {
			return &InvalidInputError{Kind: "task", ID: task.ID, Reason: "deadline is required"}
		}
	}
	return nil
}
