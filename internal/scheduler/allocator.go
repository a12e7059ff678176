package scheduler

import "github.com/noah-isme/acadia-planner-api/internal/models"

// allocState tracks mutable capacity and break pacing during one run.
// The pool stays sorted by day then start; capacity is always consumed from
// the front of a segment, so the ordering invariant holds throughout.
type allocState struct {
	pool    []FreeInterval
	worked  map[int]int // continuous minutes since the last break, per day
	lastEnd map[int]int // minute-of-day where the last block or break ended
	prefs   models.StudyPreference

	placements []Placement
	breaks     []BreakSlot
}

// Allocate assigns ranked tasks to free intervals, greedy by priority.
// Intervals are consumed Monday through Sunday, earliest first. Blocks are
// capped at MaxBlockLength and truncated at the break threshold, with a
// break of the configured length inserted after the threshold is reached.
// Tasks that cannot be fully covered keep any partial placements and are
// reported as unplaceable with their outstanding minutes; the run continues
// for lower-priority tasks with whatever capacity remains.
func Allocate(intervals []FreeInterval, ranked []RankedTask, prefs models.StudyPreference) *Result {
	st := &allocState{
		pool:       append([]FreeInterval(nil), intervals...),
		worked:     make(map[int]int),
		lastEnd:    make(map[int]int),
		prefs:      prefs,
		placements: []Placement{},
		breaks:     []BreakSlot{},
	}

	unplaceable := []UnplacedTask{}
	for _, candidate := range ranked {
		remaining := st.placeTask(candidate.Task.ID, candidate.Task.DurationMinutes)
		if remaining > 0 {
			unplaceable = append(unplaceable, UnplacedTask{
				TaskID:           candidate.Task.ID,
				RemainingMinutes: remaining,
			})
		}
	}

	return &Result{
		Placements:  st.placements,
		Breaks:      st.breaks,
		Unplaceable: unplaceable,
	}
}

// placeTask walks the pool front to back placing blocks until the task's
// duration is covered or capacity runs out. It returns the minutes still
// outstanding.
func (st *allocState) placeTask(taskID string, duration int) int {
	remaining := duration
	i := 0
	for remaining > 0 && i < len(st.pool) {
		seg := st.pool[i]
		day := seg.Day
		free := seg.Minutes()

		// An idle gap at least as long as a break serves as one.
		if last, ok := st.lastEnd[day]; ok {
			if gap := seg.Start - last; gap > 0 && gap >= st.prefs.BreakLength {
				st.worked[day] = 0
			}
		}

		untilBreak := st.prefs.BreakFrequency - st.worked[day]
		if untilBreak <= 0 || (untilBreak < MinWorkQuantum && untilBreak < remaining) {
			st.insertBreak(i)
			continue
		}

		blockLen := minOf(remaining, free, MaxBlockLength, untilBreak)
		if blockLen < MinWorkQuantum && blockLen < remaining {
			// Residue too small to hold a meaningful block of this task.
			i++
			continue
		}

		start := seg.Start
		end := start + blockLen
		st.placements = append(st.placements, Placement{TaskID: taskID, Day: day, Start: start, End: end})
		st.worked[day] += blockLen
		st.lastEnd[day] = end
		remaining -= blockLen
		shrunkAway := st.consume(i, blockLen)

		if st.worked[day] >= st.prefs.BreakFrequency {
			if !shrunkAway {
				st.insertBreak(i)
			} else {
				// The interval ended exactly at the threshold; the natural
				// gap that follows stands in for the break.
				st.worked[day] = 0
			}
		}
	}
	return remaining
}

// insertBreak consumes up to the configured break length from the front of
// the segment at index i and resets the day's continuous-work counter.
func (st *allocState) insertBreak(i int) {
	seg := st.pool[i]
	length := st.prefs.BreakLength
	if free := seg.Minutes(); length > free {
		length = free
	}
	if length > 0 {
		st.breaks = append(st.breaks, BreakSlot{Day: seg.Day, Start: seg.Start, End: seg.Start + length})
		st.lastEnd[seg.Day] = seg.Start + length
		st.consume(i, length)
	}
	st.worked[seg.Day] = 0
}

// consume removes n minutes from the front of the segment at index i,
// dropping the segment entirely when it is exhausted. It reports whether
// the segment was removed.
func (st *allocState) consume(i, n int) bool {
	st.pool[i].Start += n
	if st.pool[i].Minutes() <= 0 {
		st.pool = append(st.pool[:i], st.pool[i+1:]...)
		return true
	}
	return false
}

func minOf(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
