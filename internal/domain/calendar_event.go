package domain

import (
	"time"

	"github.com/m04kA/SMC-BookingSlots/internal/availability"
)

// CalendarEvent is a busy block pulled from the external calendar and cached
// locally so catalog builds never wait on the calendar provider.
type CalendarEvent struct {
	ID         int64
	CalendarID string
	ExternalID string
	StartAt    time.Time
	EndAt      time.Time
	Summary    *string
	SyncedAt   time.Time
}

// Blocker converts the event into an engine blocker. External events carry no buffers.
func (e *CalendarEvent) Blocker() availability.Blocker {
	return availability.CalendarBlocker(e.ExternalID, e.StartAt, e.EndAt)
}
