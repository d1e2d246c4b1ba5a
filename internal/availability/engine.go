package availability

import (
	"time"
)

// Engine computes bookable slots for a fixed policy. It holds no mutable state
// and is safe for concurrent use.
type Engine struct {
	cfg     Config
	zone    Zone
	windows map[string]TimeWindow
	short   JobDuration
	long    JobDuration
	closed  map[time.Weekday]bool
}

// NewEngine validates the policy and prepares lookup tables.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	zone, err := LoadZone(cfg.TimeZone)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cloneConfig(cfg),
		zone:    zone,
		windows: make(map[string]TimeWindow, len(cfg.Windows)),
		closed:  make(map[time.Weekday]bool, len(cfg.ClosedWeekdays)),
	}
	for _, w := range cfg.Windows {
		e.windows[normalizeName(w.Name)] = w
	}
	for _, d := range cfg.Durations {
		switch d.Kind {
		case DurationShort:
			e.short = d
		case DurationLong:
			e.long = d
		}
	}
	for _, wd := range cfg.ClosedWeekdays {
		e.closed[wd] = true
	}

	return e, nil
}

// Config returns a copy of the policy.
func (e *Engine) Config() Config {
	return cloneConfig(e.cfg)
}

// Zone returns the business time zone.
func (e *Engine) Zone() Zone {
	return e.zone
}

// Windows returns the windows in canonical order.
func (e *Engine) Windows() []TimeWindow {
	return append([]TimeWindow(nil), e.cfg.Windows...)
}

// Window looks a window up by name, ignoring case and surrounding spaces.
func (e *Engine) Window(name string) (TimeWindow, bool) {
	w, ok := e.windows[normalizeName(name)]
	return w, ok
}

// Duration looks a job duration up by kind.
func (e *Engine) Duration(kind DurationKind) (JobDuration, bool) {
	switch kind {
	case DurationShort:
		return e.short, true
	case DurationLong:
		return e.long, true
	default:
		return JobDuration{}, false
	}
}

// SlotBounds returns the UTC [start, end) of a job starting in window on dateKey.
func (e *Engine) SlotBounds(dateKey string, window TimeWindow, duration JobDuration) (time.Time, time.Time, error) {
	start, err := e.zone.InstantFor(dateKey, window.Hour)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.Add(duration.Length()), nil
}

// clock is the view of "now" shared by every rule evaluated in one call.
type clock struct {
	now      time.Time
	today    time.Time
	todayKey string
	tomorrow string
	lastKey  string
	hour     int
}

func (e *Engine) clockAt(now time.Time) clock {
	today := e.zone.today(now)
	return clock{
		now:      now,
		today:    today,
		todayKey: today.Format(DateKeyLayout),
		tomorrow: today.AddDate(0, 0, 1).Format(DateKeyLayout),
		lastKey:  today.AddDate(0, 0, e.cfg.MaxAdvanceDays).Format(DateKeyLayout),
		hour:     e.zone.Hour(now),
	}
}

func (e *Engine) sameDayClosed(c clock) bool {
	return c.hour >= e.cfg.SameDayCutoffHour
}

func (e *Engine) closingHour(wd time.Weekday) int {
	if isWeekend(wd) && e.cfg.WeekendClosingHour > 0 {
		return e.cfg.WeekendClosingHour
	}
	return e.cfg.ClosingHour
}

// evaluate applies the schedule rules to one (date, window, duration) candidate.
// date is a civil date at UTC midnight within the bookable horizon.
func (e *Engine) evaluate(c clock, date time.Time, w TimeWindow, d JobDuration, blockers []Blocker) Reason {
	key := date.Format(DateKeyLayout)
	isToday := key == c.todayKey

	if isToday && e.sameDayClosed(c) {
		return ReasonSameDayClosed
	}

	start := e.zone.at(date, w.Hour)
	end := start.Add(d.Length())

	if isToday {
		earliest := c.now.Add(time.Duration(e.cfg.MinNoticeHours) * time.Hour)
		if start.Before(earliest) {
			return ReasonInsufficientNotice
		}
	}

	if key == c.tomorrow && c.hour >= e.cfg.NextDayCutoffHour && w.Hour < e.cfg.NextDayEarliestHour {
		return ReasonNextDayEarly
	}

	wd := date.Weekday()
	if e.closed[wd] {
		return ReasonOutsideHours
	}
	if end.After(e.zone.at(date, e.closingHour(wd))) {
		return ReasonOutsideHours
	}

	if !IsFree(start, end, blockers) {
		return ReasonSlotUnavailable
	}

	return ReasonNone
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Windows = append([]TimeWindow(nil), cfg.Windows...)
	out.Durations = append([]JobDuration(nil), cfg.Durations...)
	out.ClosedWeekdays = append([]time.Weekday(nil), cfg.ClosedWeekdays...)
	return out
}
