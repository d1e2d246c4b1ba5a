package sync_calendar

import "errors"

var (
	// ErrCalendarUnavailable возвращается, когда внешний календарь не ответил или ответил ошибкой
	ErrCalendarUnavailable = errors.New("sync_calendar: calendar is unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("sync_calendar: internal error")
)
