package sync_calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-BookingSlots/internal/domain"
)

// UseCase use case для синхронизации занятости из внешнего календаря
type UseCase struct {
	client         CalendarClient
	eventRepo      CalendarEventRepository
	txManager      TransactionManager
	metrics        MetricsRecorder
	maxAdvanceDays int
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	client CalendarClient,
	eventRepo CalendarEventRepository,
	txManager TransactionManager,
	metrics MetricsRecorder,
	maxAdvanceDays int,
	logger Logger,
) *UseCase {
	return &UseCase{
		client:         client,
		eventRepo:      eventRepo,
		txManager:      txManager,
		metrics:        metrics,
		maxAdvanceDays: maxAdvanceDays,
		timeProvider:   &RealTimeProvider{},
		logger:         logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute загружает занятость на горизонт бронирования и заменяет кэш
// При ошибке календаря кэш не трогаем: каталог продолжает работать по старым данным
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	// 1. Определяем окно синхронизации
	now := uc.timeProvider.Now().UTC()
	from := now
	to := now.AddDate(0, 0, uc.maxAdvanceDays+1)
	calendarID := uc.client.CalendarID()

	uc.logger.Info("SyncCalendar: calendar=%s, from=%s, to=%s",
		calendarID, from.Format(time.RFC3339), to.Format(time.RFC3339))

	// 2. Запрашиваем занятость
	busy, err := uc.client.FreeBusy(ctx, from, to)
	if err != nil {
		uc.metrics.ObserveCalendarSync(false, 0)
		uc.logger.Error("SyncCalendar: failed to fetch free/busy: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}

	// 3. Конвертируем в события кэша
	events := make([]domain.CalendarEvent, 0, len(busy))
	seen := make(map[string]struct{}, len(busy))
	for _, b := range busy {
		if !b.End.After(b.Start) {
			uc.logger.Warn("SyncCalendar: skipping empty busy interval %s - %s",
				b.Start.Format(time.RFC3339), b.End.Format(time.RFC3339))
			continue
		}
		id := externalID(b.Start, b.End)
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		events = append(events, domain.CalendarEvent{
			CalendarID: calendarID,
			ExternalID: id,
			StartAt:    b.Start.UTC(),
			EndAt:      b.End.UTC(),
			SyncedAt:   now,
		})
	}

	// 4. Заменяем окно в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		return uc.eventRepo.ReplaceWindow(txCtx, calendarID, from, to, events)
	})
	if err != nil {
		uc.metrics.ObserveCalendarSync(false, 0)
		uc.logger.Error("SyncCalendar: failed to store events: %v", err)
		return nil, fmt.Errorf("%w: failed to store events: %v", ErrInternal, err)
	}

	uc.metrics.ObserveCalendarSync(true, len(events))
	uc.logger.Info("SyncCalendar: stored %d busy intervals", len(events))

	return &Response{
		CalendarID: calendarID,
		From:       from,
		To:         to,
		Events:     len(events),
		SyncedAt:   now,
	}, nil
}

// externalID free/busy не отдает идентификаторы событий, ключом служат границы интервала
func externalID(start, end time.Time) string {
	return fmt.Sprintf("busy-%d-%d", start.Unix(), end.Unix())
}
