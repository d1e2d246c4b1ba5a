package sync_calendar

import "time"

// Response результат синхронизации
type Response struct {
	CalendarID string    `json:"calendarId"`
	From       time.Time `json:"from"`
	To         time.Time `json:"to"`
	Events     int       `json:"events"`
	SyncedAt   time.Time `json:"syncedAt"`
}
