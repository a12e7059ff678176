package scheduler

import (
	"sort"

	"github.com/noah-isme/acadia-planner-api/internal/models"
)

// DecomposeSlots expands weekly availability slots into an ordered list of
// free intervals: sorted by day then start, non-overlapping, each at least
// MinWorkQuantum long. Overlapping slots on the same day are merged.
//
// A malformed slot (unknown day, out-of-range minutes, or start >= end)
// aborts decomposition with an *InvalidInputError naming the slot, so the
// caller can tell the user exactly which record is broken instead of
// silently producing a degraded week.
func DecomposeSlots(slots []models.AvailabilitySlot) ([]FreeInterval, error) {
	raw := make([]FreeInterval, 0, len(slots))
	for _, slot := range slots {
		day := models.DayIndex(slot.DayOfWeek)
		if day == 0 {
			return nil, &InvalidInputError{Kind: "availability_slot", ID: slot.ID, Reason: "unknown day of week " + slot.DayOfWeek}
		}
		if slot.StartMinute < 0 || slot.EndMinute > models.MinutesPerDay {
			return nil, &InvalidInputError{Kind: "availability_slot", ID: slot.ID, Reason: "minutes out of range"}
		}
		if slot.StartMinute >= slot.EndMinute {
			return nil, &InvalidInputError{Kind: "availability_slot", ID: slot.ID, Reason: "start must be before end"}
		}
		raw = append(raw, FreeInterval{Day: day, Start: slot.StartMinute, End: slot.EndMinute})
	}

	sort.Slice(raw, func(i, j int) bool {
		if raw[i].Day != raw[j].Day {
			return raw[i].Day < raw[j].Day
		}
		if raw[i].Start != raw[j].Start {
			return raw[i].Start < raw[j].Start
		}
		return raw[i].End < raw[j].End
	})

	merged := make([]FreeInterval, 0, len(raw))
	for _, interval := range raw {
		if n := len(merged); n > 0 && merged[n-1].Day == interval.Day && interval.Start <= merged[n-1].End {
			if interval.End > merged[n-1].End {
				merged[n-1].End = interval.End
			}
			continue
		}
		merged = append(merged, interval)
	}

	// Sub-quantum slots carry no placeable work.
	result := merged[:0]
	for _, interval := range merged {
		if interval.Minutes() >= MinWorkQuantum {
			result = append(result, interval)
		}
	}
	return result, nil
}
