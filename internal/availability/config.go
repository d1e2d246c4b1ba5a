package availability

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidConfig is returned when a scheduling policy cannot be used by the engine.
var ErrInvalidConfig = errors.New("availability: invalid config")

// DurationKind identifies one of the supported job lengths.
type DurationKind string

const (
	DurationShort DurationKind = "short"
	DurationLong  DurationKind = "long"
)

// TimeWindow is a named candidate start time on the local clock, e.g. "10am".
type TimeWindow struct {
	Name string
	Hour int
}

// JobDuration maps a duration kind to a fixed number of minutes.
type JobDuration struct {
	Kind    DurationKind
	Label   string
	Minutes int
}

// Length returns the job duration as time.Duration.
func (d JobDuration) Length() time.Duration {
	return time.Duration(d.Minutes) * time.Minute
}

// Config is the static scheduling policy. It is loaded once at process start
// and treated as immutable afterwards.
type Config struct {
	TimeZone  string
	Windows   []TimeWindow
	Durations []JobDuration

	BufferBeforeMinutes int
	BufferAfterMinutes  int

	MaxAdvanceDays    int
	SameDayCutoffHour int

	// After NextDayCutoffHour, tomorrow's windows starting before
	// NextDayEarliestHour are not bookable.
	NextDayCutoffHour   int
	NextDayEarliestHour int

	MinNoticeHours int

	ClosingHour        int
	WeekendClosingHour int // 0 = same as ClosingHour
	ClosedWeekdays     []time.Weekday
}

// HourLabel renders an hour of the day the way windows are named: 9am, 12pm, 6pm.
func HourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12am"
	case hour < 12:
		return fmt.Sprintf("%dam", hour)
	case hour == 12:
		return "12pm"
	default:
		return fmt.Sprintf("%dpm", hour-12)
	}
}

// HourlyWindows builds windows for every hour in [fromHour, toHour].
func HourlyWindows(fromHour, toHour int) []TimeWindow {
	windows := make([]TimeWindow, 0, toHour-fromHour+1)
	for h := fromHour; h <= toHour; h++ {
		windows = append(windows, TimeWindow{Name: HourLabel(h), Hour: h})
	}
	return windows
}

// DefaultConfig returns the policy the business runs with.
func DefaultConfig() Config {
	return Config{
		TimeZone: "Pacific/Auckland",
		Windows:  HourlyWindows(9, 18),
		Durations: []JobDuration{
			{Kind: DurationShort, Label: "1 hour", Minutes: 60},
			{Kind: DurationLong, Label: "2 hours", Minutes: 120},
		},
		BufferBeforeMinutes: 0,
		BufferAfterMinutes:  15,
		MaxAdvanceDays:      14,
		SameDayCutoffHour:   18,
		NextDayCutoffHour:   20,
		NextDayEarliestHour: 12,
		MinNoticeHours:      2,
		ClosingHour:         20,
	}
}

// Validate checks that the policy is internally consistent.
func (c Config) Validate() error {
	if strings.TrimSpace(c.TimeZone) == "" {
		return fmt.Errorf("%w: time zone is required", ErrInvalidConfig)
	}
	if _, err := time.LoadLocation(c.TimeZone); err != nil {
		return fmt.Errorf("%w: unknown time zone %q: %v", ErrInvalidConfig, c.TimeZone, err)
	}

	if len(c.Windows) == 0 {
		return fmt.Errorf("%w: at least one time window is required", ErrInvalidConfig)
	}
	seen := make(map[string]struct{}, len(c.Windows))
	prevHour := -1
	for _, w := range c.Windows {
		key := normalizeName(w.Name)
		if key == "" {
			return fmt.Errorf("%w: window at hour %d has no name", ErrInvalidConfig, w.Hour)
		}
		if _, ok := seen[key]; ok {
			return fmt.Errorf("%w: duplicate window %q", ErrInvalidConfig, w.Name)
		}
		seen[key] = struct{}{}
		if w.Hour < 0 || w.Hour > 23 {
			return fmt.Errorf("%w: window %q hour %d out of range", ErrInvalidConfig, w.Name, w.Hour)
		}
		if w.Hour <= prevHour {
			return fmt.Errorf("%w: windows must be in ascending hour order", ErrInvalidConfig)
		}
		prevHour = w.Hour
	}

	var hasShort, hasLong bool
	for _, d := range c.Durations {
		if d.Minutes <= 0 {
			return fmt.Errorf("%w: duration %q must be positive", ErrInvalidConfig, d.Kind)
		}
		switch d.Kind {
		case DurationShort:
			if hasShort {
				return fmt.Errorf("%w: duplicate short duration", ErrInvalidConfig)
			}
			hasShort = true
		case DurationLong:
			if hasLong {
				return fmt.Errorf("%w: duplicate long duration", ErrInvalidConfig)
			}
			hasLong = true
		default:
			return fmt.Errorf("%w: unknown duration kind %q", ErrInvalidConfig, d.Kind)
		}
	}
	if !hasShort || !hasLong {
		return fmt.Errorf("%w: both short and long durations are required", ErrInvalidConfig)
	}

	if c.BufferBeforeMinutes < 0 || c.BufferAfterMinutes < 0 {
		return fmt.Errorf("%w: buffers must not be negative", ErrInvalidConfig)
	}
	if c.MaxAdvanceDays < 0 {
		return fmt.Errorf("%w: max advance days must not be negative", ErrInvalidConfig)
	}
	if c.MinNoticeHours < 0 {
		return fmt.Errorf("%w: min notice hours must not be negative", ErrInvalidConfig)
	}

	for name, h := range map[string]int{
		"same day cutoff hour":   c.SameDayCutoffHour,
		"next day cutoff hour":   c.NextDayCutoffHour,
		"next day earliest hour": c.NextDayEarliestHour,
	} {
		if h < 0 || h > 24 {
			return fmt.Errorf("%w: %s %d out of range", ErrInvalidConfig, name, h)
		}
	}
	if c.ClosingHour < 1 || c.ClosingHour > 24 {
		return fmt.Errorf("%w: closing hour %d out of range", ErrInvalidConfig, c.ClosingHour)
	}
	if c.WeekendClosingHour < 0 || c.WeekendClosingHour > 24 {
		return fmt.Errorf("%w: weekend closing hour %d out of range", ErrInvalidConfig, c.WeekendClosingHour)
	}
	for _, wd := range c.ClosedWeekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("%w: invalid closed weekday %d", ErrInvalidConfig, wd)
		}
	}

	return nil
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
