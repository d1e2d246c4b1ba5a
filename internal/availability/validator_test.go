package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateSlot(t *testing.T) {
	e := newTestEngine(t)

	afternoon := localTime(t, 2026, time.March, 10, 13, 0)
	evening := localTime(t, 2026, time.March, 10, 18, 30)
	night := localTime(t, 2026, time.March, 10, 20, 30)

	blockers := []Blocker{
		BookingBlocker("11",
			localTime(t, 2026, time.March, 12, 10, 0),
			localTime(t, 2026, time.March, 12, 11, 0),
			15, 15),
		BookingBlocker("12",
			localTime(t, 2026, time.March, 10, 14, 0),
			localTime(t, 2026, time.March, 10, 15, 0),
			0, 15),
	}

	tests := []struct {
		name string
		now  time.Time
		req  SlotRequest
		want Reason
	}{
		{
			name: "bookable afternoon slot today",
			now:  afternoon,
			req:  SlotRequest{DateKey: "2026-03-10", Window: "4pm", Duration: DurationLong},
			want: ReasonNone,
		},
		{
			name: "window name matching ignores case",
			now:  afternoon,
			req:  SlotRequest{DateKey: "2026-03-11", Window: " 3PM ", Duration: DurationShort},
			want: ReasonNone,
		},
		{
			name: "impossible calendar date",
			now:  afternoon,
			req:  SlotRequest{DateKey: "2026-02-30", Window: "10am", Duration: DurationShort},
			want: ReasonInvalidFormat,
		},
		{
			name: "unknown window",
			now:  afternoon,
			req:  SlotRequest{DateKey: "2026-03-11", Window: "noon", Duration: DurationShort},
			want: ReasonInvalidFormat,
		},
		{
			name: "unknown duration",
			now:  afternoon,
			req:  SlotRequest{DateKey: "2026-03-11", Window: "10am", Duration: "medium"},
			want: ReasonInvalidFormat,
		},
		{
			name: "yesterday",
			now:  afternoon,
			req:  SlotRequest{DateKey: "2026-03-09", Window: "10am", Duration: DurationShort},
			want: ReasonDateInPast,
		},
		{
			name: "21 days ahead",
			now:  afternoon,
			req:  SlotRequest{DateKey: "2026-03-31", Window: "10am", Duration: DurationShort},
			want: ReasonTooFarInAdvance,
		},
		{
			name: "last day of horizon",
			now:  afternoon,
			req:  SlotRequest{DateKey: "2026-03-24", Window: "10am", Duration: DurationShort},
			want: ReasonNone,
		},
		{
			name: "today after same-day cutoff",
			now:  evening,
			req:  SlotRequest{DateKey: "2026-03-10", Window: "6pm", Duration: DurationShort},
			want: ReasonSameDayClosed,
		},
		{
			name: "inside notice period",
			now:  afternoon,
			req:  SlotRequest{DateKey: "2026-03-10", Window: "1pm", Duration: DurationShort},
			want: ReasonInsufficientNotice,
		},
		{
			name: "notice wins over conflict",
			now:  afternoon,
			req:  SlotRequest{DateKey: "2026-03-10", Window: "2pm", Duration: DurationShort},
			want: ReasonInsufficientNotice,
		},
		{
			name: "early window tomorrow after next-day cutoff",
			now:  night,
			req:  SlotRequest{DateKey: "2026-03-11", Window: "10am", Duration: DurationShort},
			want: ReasonNextDayEarly,
		},
		{
			name: "noon tomorrow after next-day cutoff",
			now:  night,
			req:  SlotRequest{DateKey: "2026-03-11", Window: "12pm", Duration: DurationShort},
			want: ReasonNone,
		},
		{
			name: "window outside the schedule",
			now:  afternoon,
			req:  SlotRequest{DateKey: "2026-03-11", Window: "7pm", Duration: DurationLong},
			want: ReasonInvalidFormat,
		},
		{
			name: "leading buffer of existing booking",
			now:  afternoon,
			req:  SlotRequest{DateKey: "2026-03-12", Window: "9am", Duration: DurationShort},
			want: ReasonSlotUnavailable,
		},
		{
			name: "trailing buffer of existing booking",
			now:  afternoon,
			req:  SlotRequest{DateKey: "2026-03-12", Window: "11am", Duration: DurationShort},
			want: ReasonSlotUnavailable,
		},
		{
			name: "clear of the buffer",
			now:  afternoon,
			req:  SlotRequest{DateKey: "2026-03-12", Window: "12pm", Duration: DurationLong},
			want: ReasonNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.ValidateSlot(tt.now, tt.req, blockers)
			assert.Equal(t, tt.want, got.Reason)
			assert.Equal(t, tt.want == ReasonNone, got.Valid)
		})
	}
}

func TestValidateSlot_OperatingHours(t *testing.T) {
	e := newTestEngine(t, func(c *Config) {
		c.ClosingHour = 19
		c.ClosedWeekdays = []time.Weekday{time.Sunday}
	})
	now := localTime(t, 2026, time.March, 10, 9, 0)

	got := e.ValidateSlot(now, SlotRequest{DateKey: "2026-03-11", Window: "6pm", Duration: DurationLong}, nil)
	assert.Equal(t, Result{Valid: false, Reason: ReasonOutsideHours}, got)

	got = e.ValidateSlot(now, SlotRequest{DateKey: "2026-03-11", Window: "6pm", Duration: DurationShort}, nil)
	assert.Equal(t, Result{Valid: true}, got)

	got = e.ValidateSlot(now, SlotRequest{DateKey: "2026-03-15", Window: "10am", Duration: DurationShort}, nil)
	assert.Equal(t, ReasonOutsideHours, got.Reason)
}

func TestValidateSlot_AgreesWithCatalog(t *testing.T) {
	e := newTestEngine(t)
	now := localTime(t, 2026, time.March, 10, 15, 10)
	blockers := []Blocker{
		BookingBlocker("1", localTime(t, 2026, time.March, 11, 12, 0), localTime(t, 2026, time.March, 11, 14, 0), 0, 15),
		CalendarBlocker("evt", localTime(t, 2026, time.March, 13, 9, 0), localTime(t, 2026, time.March, 13, 11, 0)),
	}

	for _, day := range e.BuildCatalog(now, blockers) {
		for _, w := range day.Windows {
			for _, kind := range []DurationKind{DurationShort, DurationLong} {
				res := e.ValidateSlot(now, SlotRequest{DateKey: day.DateKey, Window: w.Window.Name, Duration: kind}, blockers)
				assert.Equal(t, w.Available(kind), res.Valid, "%s %s %s", day.DateKey, w.Window.Name, kind)
			}
		}
	}
}

func TestReason_Message(t *testing.T) {
	reasons := []Reason{
		ReasonInvalidFormat,
		ReasonDateInPast,
		ReasonTooFarInAdvance,
		ReasonSameDayClosed,
		ReasonInsufficientNotice,
		ReasonNextDayEarly,
		ReasonOutsideHours,
		ReasonSlotUnavailable,
	}
	for _, r := range reasons {
		assert.NotEmpty(t, r.Message(), r)
	}
	assert.Empty(t, ReasonNone.Message())
}
