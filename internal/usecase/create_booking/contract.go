package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingSlots/internal/availability"
	"github.com/m04kA/SMC-BookingSlots/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ExpireHolds(ctx context.Context, now time.Time) (int64, error)
}

// BlockerLoader источник занятых интервалов
type BlockerLoader interface {
	Load(ctx context.Context, now time.Time) ([]availability.Blocker, error)
}

// Engine движок доступности
type Engine interface {
	ValidateSlot(now time.Time, req availability.SlotRequest, blockers []availability.Blocker) availability.Result
	Window(name string) (availability.TimeWindow, bool)
	Duration(kind availability.DurationKind) (availability.JobDuration, bool)
	SlotBounds(dateKey string, window availability.TimeWindow, duration availability.JobDuration) (time.Time, time.Time, error)
	Config() availability.Config
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder метрики создания бронирований
type MetricsRecorder interface {
	ObserveSlotCheck(reason string)
	ObserveBookingCreated(status string)
}

// ReferenceGenerator генератор публичных кодов бронирования
type ReferenceGenerator func() uuid.UUID

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
