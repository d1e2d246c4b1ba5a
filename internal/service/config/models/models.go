package models

import (
	"github.com/m04kA/SMC-BookingSlots/internal/availability"
)

// WindowResponse окно начала работ
type WindowResponse struct {
	Name string `json:"name"`
	Hour int    `json:"hour"`
}

// DurationResponse вариант длительности работ
type DurationResponse struct {
	Kind    availability.DurationKind `json:"kind"`
	Label   string                    `json:"label"`
	Minutes int                       `json:"minutes"`
}

// PolicyResponse публичное представление политики расписания
type PolicyResponse struct {
	TimeZone            string             `json:"timeZone"`
	Windows             []WindowResponse   `json:"windows"`
	Durations           []DurationResponse `json:"durations"`
	BufferBeforeMinutes int                `json:"bufferBeforeMinutes"`
	BufferAfterMinutes  int                `json:"bufferAfterMinutes"`
	MaxAdvanceDays      int                `json:"maxAdvanceDays"`
	SameDayCutoffHour   int                `json:"sameDayCutoffHour"`
	NextDayCutoffHour   int                `json:"nextDayCutoffHour"`
	NextDayEarliestHour int                `json:"nextDayEarliestHour"`
	MinNoticeHours      int                `json:"minNoticeHours"`
	ClosingHour         int                `json:"closingHour"`
	WeekendClosingHour  int                `json:"weekendClosingHour"`
	ClosedWeekdays      []string           `json:"closedWeekdays"`
}

// FromEngineConfig конвертирует политику движка в DTO
// weekendClosingHour всегда заполнен: 0 в конфиге означает "как в будни"
func FromEngineConfig(cfg availability.Config) *PolicyResponse {
	windows := make([]WindowResponse, len(cfg.Windows))
	for i, w := range cfg.Windows {
		windows[i] = WindowResponse{Name: w.Name, Hour: w.Hour}
	}

	durations := make([]DurationResponse, len(cfg.Durations))
	for i, d := range cfg.Durations {
		durations[i] = DurationResponse{Kind: d.Kind, Label: d.Label, Minutes: d.Minutes}
	}

	closed := make([]string, len(cfg.ClosedWeekdays))
	for i, wd := range cfg.ClosedWeekdays {
		closed[i] = wd.String()
	}

	weekendClosing := cfg.WeekendClosingHour
	if weekendClosing == 0 {
		weekendClosing = cfg.ClosingHour
	}

	return &PolicyResponse{
		TimeZone:            cfg.TimeZone,
		Windows:             windows,
		Durations:           durations,
		BufferBeforeMinutes: cfg.BufferBeforeMinutes,
		BufferAfterMinutes:  cfg.BufferAfterMinutes,
		MaxAdvanceDays:      cfg.MaxAdvanceDays,
		SameDayCutoffHour:   cfg.SameDayCutoffHour,
		NextDayCutoffHour:   cfg.NextDayCutoffHour,
		NextDayEarliestHour: cfg.NextDayEarliestHour,
		MinNoticeHours:      cfg.MinNoticeHours,
		ClosingHour:         cfg.ClosingHour,
		WeekendClosingHour:  weekendClosing,
		ClosedWeekdays:      closed,
	}
}
