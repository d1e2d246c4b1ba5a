package get_available_slots

import (
	"context"
	"fmt"
	"time"
)

// UseCase use case для получения каталога доступных слотов
type UseCase struct {
	loader       BlockerLoader
	engine       Engine
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	loader BlockerLoader,
	engine Engine,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		loader:       loader,
		engine:       engine,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute строит каталог доступных дней и окон от текущего момента
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	started := time.Now()

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()
	uc.logger.Info("GetAvailableSlots: building catalog at %s", now.UTC().Format(time.RFC3339))

	// 2. Загружаем бронирования и события календаря
	blockers, err := uc.loader.Load(ctx, now)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load blockers: %v", err)
		return nil, fmt.Errorf("%w: failed to load blockers: %v", ErrInternal, err)
	}

	// 3. Строим каталог
	days := uc.engine.BuildCatalog(now, blockers)

	cfg := uc.engine.Config()
	durations := make([]Duration, 0, len(cfg.Durations))
	for _, d := range cfg.Durations {
		durations = append(durations, Duration{Kind: d.Kind, Label: d.Label, Minutes: d.Minutes})
	}

	uc.metrics.ObserveCatalogBuild(time.Since(started))
	uc.logger.Info("GetAvailableSlots: %d days, %d blockers", len(days), len(blockers))

	return &Response{
		TimeZone:    cfg.TimeZone,
		GeneratedAt: now.UTC(),
		Durations:   durations,
		Days:        days,
	}, nil
}
