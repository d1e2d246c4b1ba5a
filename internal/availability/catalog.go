package availability

import "time"

// WindowAvailability is one window's availability for each job duration.
type WindowAvailability struct {
	Window         TimeWindow
	AvailableShort bool
	AvailableLong  bool
}

// Available reports whether the window can take a job of the given kind.
func (w WindowAvailability) Available(kind DurationKind) bool {
	switch kind {
	case DurationShort:
		return w.AvailableShort
	case DurationLong:
		return w.AvailableLong
	default:
		return false
	}
}

// BookableDay is one local calendar day's availability report.
type BookableDay struct {
	DateKey   string
	Label     string
	IsWeekend bool
	IsToday   bool
	Windows   []WindowAvailability
}

// HasAnySlots reports whether at least one window is available for at least one duration.
func (d BookableDay) HasAnySlots() bool {
	for _, w := range d.Windows {
		if w.AvailableShort || w.AvailableLong {
			return true
		}
	}
	return false
}

// BuildCatalog returns the bookable days from today to today+MaxAdvanceDays in local time.
// Today is omitted once the same-day cutoff has passed. Days come in ascending order and
// windows in canonical order. An all-unavailable result is valid output.
func (e *Engine) BuildCatalog(now time.Time, blockers []Blocker) []BookableDay {
	c := e.clockAt(now)

	days := make([]BookableDay, 0, e.cfg.MaxAdvanceDays+1)
	for offset := 0; offset <= e.cfg.MaxAdvanceDays; offset++ {
		if offset == 0 && e.sameDayClosed(c) {
			continue
		}

		date := c.today.AddDate(0, 0, offset)
		day := BookableDay{
			DateKey:   date.Format(DateKeyLayout),
			Label:     dayLabel(offset, date),
			IsWeekend: isWeekend(date.Weekday()),
			IsToday:   offset == 0,
			Windows:   make([]WindowAvailability, 0, len(e.cfg.Windows)),
		}

		for _, w := range e.cfg.Windows {
			day.Windows = append(day.Windows, WindowAvailability{
				Window:         w,
				AvailableShort: e.evaluate(c, date, w, e.short, blockers) == ReasonNone,
				AvailableLong:  e.evaluate(c, date, w, e.long, blockers) == ReasonNone,
			})
		}

		days = append(days, day)
	}

	return days
}

func dayLabel(offset int, date time.Time) string {
	switch offset {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	default:
		return date.Format("Mon 2 Jan")
	}
}
