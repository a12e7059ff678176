package models

import "time"

// MinutesPerDay bounds the minute-of-day fields on slots and blocks.
const MinutesPerDay = 24 * 60

// AvailabilitySlot is a recurring weekly window of user-declared availability.
// Start and End are minutes after midnight, with Start < End.
type AvailabilitySlot struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	DayOfWeek   string    `db:"day_of_week" json:"day_of_week"`
	StartMinute int       `db:"start_minute" json:"start_minute"`
	EndMinute   int       `db:"end_minute" json:"end_minute"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

var dayNameIndex = map[string]int{
	"MONDAY":    1,
	"TUESDAY":   2,
	"WEDNESDAY": 3,
	"THURSDAY":  4,
	"FRIDAY":    5,
	"SATURDAY":  6,
	"SUNDAY":    7,
}

var dayIndexName = map[int]string{
	1: "MONDAY",
	2: "TUESDAY",
	3: "WEDNESDAY",
	4: "THURSDAY",
	5: "FRIDAY",
	6: "SATURDAY",
	7: "SUNDAY",
}

// DayIndex maps a symbolic day name to its 1-based index, Monday first.
// Returns 0 for unknown names.
func DayIndex(name string) int {
	return dayNameIndex[name]
}

// DayName maps a 1-based day index back to its symbolic name.
func DayName(index int) string {
	return dayIndexName[index]
}
