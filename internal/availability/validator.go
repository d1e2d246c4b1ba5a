package availability

import "time"

// SlotRequest is a proposed booking slot as submitted by a customer.
type SlotRequest struct {
	DateKey  string
	Window   string
	Duration DurationKind
}

// ValidateSlot re-derives availability for one slot using the same rules as BuildCatalog.
// The first failing rule wins:
// format, range, same-day cutoff, notice / next-day, operating hours, conflict.
func (e *Engine) ValidateSlot(now time.Time, req SlotRequest, blockers []Blocker) Result {
	date, err := ParseDateKey(req.DateKey)
	if err != nil {
		return reject(ReasonInvalidFormat)
	}
	window, ok := e.Window(req.Window)
	if !ok {
		return reject(ReasonInvalidFormat)
	}
	duration, ok := e.Duration(req.Duration)
	if !ok {
		return reject(ReasonInvalidFormat)
	}

	c := e.clockAt(now)
	key := date.Format(DateKeyLayout)
	if key < c.todayKey {
		return reject(ReasonDateInPast)
	}
	if key > c.lastKey {
		return reject(ReasonTooFarInAdvance)
	}

	if reason := e.evaluate(c, date, window, duration, blockers); reason != ReasonNone {
		return reject(reason)
	}
	return accept()
}
