package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Len(t, cfg.Windows, 10)
	assert.Equal(t, "9am", cfg.Windows[0].Name)
	assert.Equal(t, "6pm", cfg.Windows[len(cfg.Windows)-1].Name)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown zone", func(c *Config) { c.TimeZone = "Nowhere/Special" }},
		{"empty zone", func(c *Config) { c.TimeZone = "" }},
		{"no windows", func(c *Config) { c.Windows = nil }},
		{"duplicate window", func(c *Config) {
			c.Windows = []TimeWindow{{Name: "9am", Hour: 9}, {Name: "9AM", Hour: 10}}
		}},
		{"unnamed window", func(c *Config) { c.Windows = []TimeWindow{{Name: " ", Hour: 9}} }},
		{"hours out of order", func(c *Config) {
			c.Windows = []TimeWindow{{Name: "10am", Hour: 10}, {Name: "9am", Hour: 9}}
		}},
		{"hour out of range", func(c *Config) { c.Windows = []TimeWindow{{Name: "late", Hour: 24}} }},
		{"missing long duration", func(c *Config) { c.Durations = c.Durations[:1] }},
		{"zero minutes", func(c *Config) { c.Durations[0].Minutes = 0 }},
		{"unknown duration kind", func(c *Config) {
			c.Durations = append(c.Durations, JobDuration{Kind: "medium", Minutes: 90})
		}},
		{"negative buffer", func(c *Config) { c.BufferAfterMinutes = -5 }},
		{"negative horizon", func(c *Config) { c.MaxAdvanceDays = -1 }},
		{"negative notice", func(c *Config) { c.MinNoticeHours = -1 }},
		{"cutoff out of range", func(c *Config) { c.SameDayCutoffHour = 25 }},
		{"closing hour zero", func(c *Config) { c.ClosingHour = 0 }},
		{"weekend closing out of range", func(c *Config) { c.WeekendClosingHour = 30 }},
		{"invalid weekday", func(c *Config) { c.ClosedWeekdays = []time.Weekday{7} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

			_, err := NewEngine(cfg)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestHourLabel(t *testing.T) {
	tests := map[int]string{
		0:  "12am",
		9:  "9am",
		11: "11am",
		12: "12pm",
		13: "1pm",
		18: "6pm",
		23: "11pm",
	}
	for hour, want := range tests {
		assert.Equal(t, want, HourLabel(hour))
	}
}

func TestEngine_ConfigIsCopied(t *testing.T) {
	cfg := DefaultConfig()
	e, err := NewEngine(cfg)
	require.NoError(t, err)

	cfg.Windows[0].Name = "changed"
	got := e.Config()
	assert.Equal(t, "9am", got.Windows[0].Name)

	got.Windows[0].Name = "changed again"
	assert.Equal(t, "9am", e.Windows()[0].Name)

	w, ok := e.Window("9AM")
	assert.True(t, ok)
	assert.Equal(t, 9, w.Hour)

	d, ok := e.Duration(DurationLong)
	assert.True(t, ok)
	assert.Equal(t, 120, d.Minutes)

	start, end, err := e.SlotBounds("2026-03-11", w, d)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 10, 20, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 2*time.Hour, end.Sub(start))
}
