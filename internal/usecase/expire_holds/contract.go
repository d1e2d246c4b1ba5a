package expire_holds

import (
	"context"
	"time"
)

// BookingRepository интерфейс для работы с бронированиями
type BookingRepository interface {
	ExpireHolds(ctx context.Context, now time.Time) (int64, error)
}

// MetricsRecorder метрики истечения холдов
type MetricsRecorder interface {
	ObserveHoldsExpired(n int64)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
