package schedule

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingSlots/internal/domain"
)

// BookingRepository источник активных бронирований
type BookingRepository interface {
	ListBlocking(ctx context.Context, now time.Time) ([]*domain.Booking, error)
}

// CalendarEventRepository кэш занятых интервалов внешнего календаря
type CalendarEventRepository interface {
	ListBusy(ctx context.Context, from, to time.Time) ([]*domain.CalendarEvent, error)
}
