package availability

import "time"

// BlockerSource tags where a blocker came from.
type BlockerSource string

const (
	SourceBooking  BlockerSource = "booking"
	SourceCalendar BlockerSource = "calendar"
)

// Blocker is a busy interval that makes any overlapping candidate unavailable.
// Start and End are UTC instants; buffers widen the interval on each side.
type Blocker struct {
	ID                  string
	Source              BlockerSource
	Start               time.Time
	End                 time.Time
	BufferBeforeMinutes int
	BufferAfterMinutes  int
}

// BookingBlocker builds a blocker for one of our own held or confirmed bookings.
func BookingBlocker(id string, start, end time.Time, bufferBeforeMinutes, bufferAfterMinutes int) Blocker {
	return Blocker{
		ID:                  id,
		Source:              SourceBooking,
		Start:               start,
		End:                 end,
		BufferBeforeMinutes: bufferBeforeMinutes,
		BufferAfterMinutes:  bufferAfterMinutes,
	}
}

// CalendarBlocker builds a blocker for an external calendar busy block. These carry no buffers.
func CalendarBlocker(id string, start, end time.Time) Blocker {
	return Blocker{
		ID:     id,
		Source: SourceCalendar,
		Start:  start,
		End:    end,
	}
}

// Effective returns the blocked interval with buffers applied.
func (b Blocker) Effective() (time.Time, time.Time) {
	start := b.Start.Add(-time.Duration(b.BufferBeforeMinutes) * time.Minute)
	end := b.End.Add(time.Duration(b.BufferAfterMinutes) * time.Minute)
	return start, end
}

// Conflicts reports whether the candidate [start, end) overlaps the effective interval.
// Touching intervals do not conflict.
func (b Blocker) Conflicts(start, end time.Time) bool {
	effStart, effEnd := b.Effective()
	return start.Before(effEnd) && end.After(effStart)
}

// FirstConflict returns the first blocker that conflicts with [start, end).
func FirstConflict(start, end time.Time, blockers []Blocker) (Blocker, bool) {
	for _, b := range blockers {
		if b.Conflicts(start, end) {
			return b, true
		}
	}
	return Blocker{}, false
}

// IsFree reports whether [start, end) conflicts with none of the blockers.
func IsFree(start, end time.Time, blockers []Blocker) bool {
	_, found := FirstConflict(start, end, blockers)
	return !found
}
