package check_slot

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-BookingSlots/internal/availability"
)

// UseCase use case для проверки одного слота перед отправкой формы
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

// Execute проверяет слот по тем же правилам, что и каталог
// Отказ по бизнес-правилам не является ошибкой: он возвращается в Response
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckSlot: date=%s, window=%s, duration=%s", req.Date, req.Window, req.Duration)

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Загружаем занятые интервалы
	blockers, err := uc.loader.Load(ctx, now)
	if err != nil {
		uc.logger.Error("CheckSlot: failed to load blockers: %v", err)
		return nil, fmt.Errorf("%w: failed to load blockers: %v", ErrInternal, err)
	}

	// 3. Проверяем слот
	result := uc.engine.ValidateSlot(now, availability.SlotRequest{
		DateKey:  req.Date,
		Window:   req.Window,
		Duration: req.Duration,
	}, blockers)

	uc.metrics.ObserveSlotCheck(string(result.Reason))

	if !result.Valid {
		uc.logger.Info("CheckSlot: rejected date=%s, window=%s: %s", req.Date, req.Window, result.Reason)
	}

	return &Response{
		Valid:   result.Valid,
		Reason:  result.Reason,
		Message: result.Reason.Message(),
	}, nil
}
