package get_available_slots

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
	BuildCatalog(now time.Time, blockers []availability.Blocker) []availability.BookableDay
	Config() availability.Config
}

// MetricsRecorder метрики построения каталога
type MetricsRecorder interface {
	ObserveCatalogBuild(d time.Duration)
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
