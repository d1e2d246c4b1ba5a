package calendar

import "time"

// BusyInterval занятый интервал календаря [Start, End)
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

type freeBusyRequest struct {
	TimeMin string         `json:"timeMin"`
	TimeMax string         `json:"timeMax"`
	Items   []freeBusyItem `json:"items"`
}

type freeBusyItem struct {
	ID string `json:"id"`
}

type freeBusyResponse struct {
	Calendars map[string]calendarBusy `json:"calendars"`
}

type calendarBusy struct {
	Busy   []busyPeriod    `json:"busy"`
	Errors []calendarError `json:"errors,omitempty"`
}

type busyPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type calendarError struct {
	Domain string `json:"domain"`
	Reason string `json:"reason"`
}
