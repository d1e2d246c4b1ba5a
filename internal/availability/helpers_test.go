package availability

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/require"
)

const testZone = "Pacific/Auckland"

func newTestEngine(t *testing.T, mutate ...func(*Config)) *Engine {
	t.Helper()

	cfg := DefaultConfig()
	for _, m := range mutate {
		m(&cfg)
	}

	e, err := NewEngine(cfg)
	require.NoError(t, err)
	return e
}

// localTime returns the UTC instant of a wall-clock time in the business zone.
func localTime(t *testing.T, year int, month time.Month, day, hour, minute int) time.Time {
	t.Helper()

	loc, err := time.LoadLocation(testZone)
	require.NoError(t, err)
	return time.Date(year, month, day, hour, minute, 0, 0, loc).UTC()
}

func findDay(t *testing.T, days []BookableDay, key string) BookableDay {
	t.Helper()

	for _, d := range days {
		if d.DateKey == key {
			return d
		}
	}
	require.Failf(t, "day not found", "no day %s in catalog", key)
	return BookableDay{}
}

func findWindow(t *testing.T, day BookableDay, name string) WindowAvailability {
	t.Helper()

	for _, w := range day.Windows {
		if w.Window.Name == name {
			return w
		}
	}
	require.Failf(t, "window not found", "no window %s on %s", name, day.DateKey)
	return WindowAvailability{}
}
