package expire_holds

import (
	"context"
	"fmt"
)

// UseCase use case для перевода просроченных held в expired
type UseCase struct {
	bookingRepo  BookingRepository
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, metrics MetricsRecorder, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
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

// Execute возвращает количество освобожденных холдов
func (uc *UseCase) Execute(ctx context.Context) (int64, error) {
	now := uc.timeProvider.Now()

	n, err := uc.bookingRepo.ExpireHolds(ctx, now)
	if err != nil {
		uc.logger.Error("ExpireHolds: failed to expire holds: %v", err)
		return 0, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.metrics.ObserveHoldsExpired(n)
	if n > 0 {
		uc.logger.Info("ExpireHolds: released %d holds", n)
	}

	return n, nil
}
