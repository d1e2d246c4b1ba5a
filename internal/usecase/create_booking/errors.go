package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-BookingSlots/internal/availability"
)

var (
	// ErrInvalidInput возвращается при некорректных входных данных (формат даты, окна, контактов)
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrDateInPast возвращается, когда дата бронирования уже прошла
	ErrDateInPast = errors.New("create_booking: date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата за пределами окна бронирования
	ErrDateTooFarInFuture = errors.New("create_booking: date is too far in the future")

	// ErrTooLateToBook возвращается при нарушении правил уведомления (same-day cutoff, notice, next-day)
	ErrTooLateToBook = errors.New("create_booking: too late to book this slot")

	// ErrOutsideOperatingHours возвращается, если работа не укладывается в часы работы
	ErrOutsideOperatingHours = errors.New("create_booking: slot is outside operating hours")

	// ErrSlotNotAvailable возвращается, когда слот пересекается с другим бронированием или событием
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)

// RejectionError отказ движка доступности с исходной причиной
// Unwrap возвращает sentinel-категорию для errors.Is
type RejectionError struct {
	Reason   availability.Reason
	category error
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("%v: %s", e.category, e.Reason)
}

func (e *RejectionError) Unwrap() error {
	return e.category
}

// NewRejectionError сопоставляет причину отказа с категорией ошибки
func NewRejectionError(reason availability.Reason) *RejectionError {
	var category error
	switch reason {
	case availability.ReasonInvalidFormat:
		category = ErrInvalidInput
	case availability.ReasonDateInPast:
		category = ErrDateInPast
	case availability.ReasonTooFarInAdvance:
		category = ErrDateTooFarInFuture
	case availability.ReasonSameDayClosed, availability.ReasonInsufficientNotice, availability.ReasonNextDayEarly:
		category = ErrTooLateToBook
	case availability.ReasonOutsideHours:
		category = ErrOutsideOperatingHours
	default:
		category = ErrSlotNotAvailable
	}
	return &RejectionError{Reason: reason, category: category}
}
