package schedule

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-BookingSlots/internal/availability"
	"github.com/m04kA/SMC-BookingSlots/internal/domain"
	"github.com/m04kA/SMC-BookingSlots/pkg/dbmetrics"
)

// Loader собирает занятые интервалы из бронирований и календаря
type Loader struct {
	bookings BookingRepository
	calendar CalendarEventRepository
	horizon  time.Duration
}

// NewLoader создает загрузчик. calendar может быть nil, если календарь отключен.
// События календаря загружаются на maxAdvanceDays+2 суток вперед: окно
// бронирования плюс запас на смещение часового пояса.
func NewLoader(bookings BookingRepository, calendar CalendarEventRepository, maxAdvanceDays int) *Loader {
	return &Loader{
		bookings: bookings,
		calendar: calendar,
		horizon:  time.Duration(maxAdvanceDays+2) * 24 * time.Hour,
	}
}

// Load возвращает все блокирующие интервалы на момент now
// Вне транзакции источники читаются параллельно, внутри - последовательно
// (одна транзакция = одно соединение).
func (l *Loader) Load(ctx context.Context, now time.Time) ([]availability.Blocker, error) {
	var (
		bookings []*domain.Booking
		events   []*domain.CalendarEvent
	)

	loadBookings := func(ctx context.Context) error {
		var err error
		bookings, err = l.bookings.ListBlocking(ctx, now)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLoadBookings, err)
		}
		return nil
	}

	loadEvents := func(ctx context.Context) error {
		if l.calendar == nil {
			return nil
		}
		var err error
		events, err = l.calendar.ListBusy(ctx, now.Add(-24*time.Hour), now.Add(l.horizon))
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLoadCalendar, err)
		}
		return nil
	}

	if dbmetrics.IsInTransaction(ctx) {
		if err := loadBookings(ctx); err != nil {
			return nil, err
		}
		if err := loadEvents(ctx); err != nil {
			return nil, err
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error { return loadBookings(gctx) })
		g.Go(func() error { return loadEvents(gctx) })
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	blockers := make([]availability.Blocker, 0, len(bookings)+len(events))
	for _, b := range bookings {
		if b.IsActive(now) {
			blockers = append(blockers, b.Blocker())
		}
	}
	for _, e := range events {
		blockers = append(blockers, e.Blocker())
	}

	return blockers, nil
}
