package sync_calendar

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingSlots/internal/domain"
	"github.com/m04kA/SMC-BookingSlots/internal/integrations/calendar"
)

// CalendarClient источник занятых интервалов внешнего календаря
type CalendarClient interface {
	CalendarID() string
	FreeBusy(ctx context.Context, from, to time.Time) ([]calendar.BusyInterval, error)
}

// CalendarEventRepository локальный кэш событий календаря
type CalendarEventRepository interface {
	ReplaceWindow(ctx context.Context, calendarID string, from, to time.Time, events []domain.CalendarEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder метрики синхронизации
type MetricsRecorder interface {
	ObserveCalendarSync(ok bool, events int)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
