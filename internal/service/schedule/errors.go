package schedule

import "errors"

var (
	// ErrLoadBookings возвращается, если не удалось загрузить бронирования
	ErrLoadBookings = errors.New("schedule: failed to load bookings")

	// ErrLoadCalendar возвращается, если не удалось загрузить события календаря
	ErrLoadCalendar = errors.New("schedule: failed to load calendar events")
)
