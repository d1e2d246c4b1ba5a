package check_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BookingSlots/internal/availability"
)

// BlockerLoader источник занятых интервалов
type BlockerLoader interface {
	Load(ctx context.Context, now time.Time) ([]availability.Blocker, error)
}

// Engine движок доступности
type Engine interface {
	ValidateSlot(now time.Time, req availability.SlotRequest, blockers []availability.Blocker) availability.Result
}

// MetricsRecorder метрики проверок слотов
type MetricsRecorder interface {
	ObserveSlotCheck(reason string)
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
