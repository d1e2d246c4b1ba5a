package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BookingSlots/internal/availability"
	getAvailableSlots "github.com/m04kA/SMC-BookingSlots/internal/usecase/get_available_slots"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	TimeZone    string             `json:"timeZone"`
	GeneratedAt time.Time          `json:"generatedAt"`
	Durations   []DurationResponse `json:"durations"`
	Days        []DayResponse      `json:"days"`
}

// DurationResponse вариант длительности работ
type DurationResponse struct {
	Kind    availability.DurationKind `json:"kind"`
	Label   string                    `json:"label"`
	Minutes int                       `json:"minutes"`
}

// DayResponse доступность одного дня
type DayResponse struct {
	Date        string           `json:"date"` // "2026-03-11"
	Label       string           `json:"label"`
	IsWeekend   bool             `json:"isWeekend"`
	IsToday     bool             `json:"isToday"`
	HasAnySlots bool             `json:"hasAnySlots"`
	Windows     []WindowResponse `json:"windows"`
}

// WindowResponse доступность окна для каждой длительности
type WindowResponse struct {
	Window         string `json:"window"` // "10am"
	Hour           int    `json:"hour"`
	AvailableShort bool   `json:"availableShort"`
	AvailableLong  bool   `json:"availableLong"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	durations := make([]DurationResponse, len(resp.Durations))
	for i, d := range resp.Durations {
		durations[i] = DurationResponse{Kind: d.Kind, Label: d.Label, Minutes: d.Minutes}
	}

	days := make([]DayResponse, len(resp.Days))
	for i, day := range resp.Days {
		windows := make([]WindowResponse, len(day.Windows))
		for j, w := range day.Windows {
			windows[j] = WindowResponse{
				Window:         w.Window.Name,
				Hour:           w.Window.Hour,
				AvailableShort: w.AvailableShort,
				AvailableLong:  w.AvailableLong,
			}
		}

		days[i] = DayResponse{
			Date:        day.DateKey,
			Label:       day.Label,
			IsWeekend:   day.IsWeekend,
			IsToday:     day.IsToday,
			HasAnySlots: day.HasAnySlots(),
			Windows:     windows,
		}
	}

	return &AvailabilityResponse{
		TimeZone:    resp.TimeZone,
		GeneratedAt: resp.GeneratedAt,
		Durations:   durations,
		Days:        days,
	}
}
