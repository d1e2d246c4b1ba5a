package calendar

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента (сеть, таймаут)
	ErrInternal = errors.New("calendar client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от календаря
	ErrInvalidResponse = errors.New("calendar client: invalid response")

	// ErrUnauthorized возвращается, если токен календаря отклонен
	ErrUnauthorized = errors.New("calendar client: unauthorized")

	// ErrCalendarNotFound возвращается, если календарь отсутствует в ответе
	ErrCalendarNotFound = errors.New("calendar client: calendar not found")
)
