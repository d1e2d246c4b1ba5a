package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingSlots/internal/availability"
	"github.com/m04kA/SMC-BookingSlots/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BookingSlots/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingSlots/pkg/txmanager"
)

// Options политика создания бронирований
type Options struct {
	HoldTTL     time.Duration // Время жизни held до подтверждения
	AutoConfirm bool          // Создавать сразу confirmed
}

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	loader       BlockerLoader
	engine       Engine
	txManager    TransactionManager
	metrics      MetricsRecorder
	opts         Options
	newReference ReferenceGenerator
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	loader BlockerLoader,
	engine Engine,
	txManager TransactionManager,
	metrics MetricsRecorder,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.HoldTTL <= 0 {
		opts.HoldTTL = domain.DefaultHoldTTL
	}
	return &UseCase{
		bookingRepo:  bookingRepo,
		loader:       loader,
		engine:       engine,
		txManager:    txManager,
		metrics:      metrics,
		opts:         opts,
		newReference: uuid.New,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// WithReferenceGenerator подменяет генератор кодов (для тестов)
func (uc *UseCase) WithReferenceGenerator(gen ReferenceGenerator) *UseCase {
	uc.newReference = gen
	return uc
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию: слот проверяется и записывается атомарно
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: date=%s, window=%s, duration=%s", req.Date, req.Window, req.Duration)

	// 1. Валидация контактных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Освобождаем просроченные held, чтобы они не держали уникальный индекс
		if _, err := uc.bookingRepo.ExpireHolds(txCtx, now); err != nil {
			uc.logger.Error("CreateBooking: failed to expire holds: %v", err)
			return fmt.Errorf("%w: failed to expire holds: %w", ErrInternal, err)
		}

		// 3.2. Загружаем занятые интервалы (с блокировкой строк)
		blockers, err := uc.loader.Load(txCtx, now)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to load blockers: %v", err)
			return fmt.Errorf("%w: failed to load blockers: %w", ErrInternal, err)
		}

		// 3.3. Проверяем слот теми же правилами, что и каталог
		check := uc.engine.ValidateSlot(now, availability.SlotRequest{
			DateKey:  req.Date,
			Window:   req.Window,
			Duration: req.Duration,
		}, blockers)
		uc.metrics.ObserveSlotCheck(string(check.Reason))

		if !check.Valid {
			uc.logger.Warn("CreateBooking: slot rejected date=%s, window=%s: %s", req.Date, req.Window, check.Reason)
			return NewRejectionError(check.Reason)
		}

		// 3.4. Вычисляем границы слота
		window, _ := uc.engine.Window(req.Window)
		duration, _ := uc.engine.Duration(req.Duration)
		startAt, endAt, err := uc.engine.SlotBounds(req.Date, window, duration)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to compute slot bounds: %v", err)
			return fmt.Errorf("%w: failed to compute slot bounds: %v", ErrInternal, err)
		}

		// 3.5. Создаем бронирование с буферами, действующими на момент записи
		cfg := uc.engine.Config()
		booking := &domain.Booking{
			Reference:           uc.newReference(),
			Status:              domain.StatusHeld,
			DateKey:             req.Date,
			Window:              window.Name,
			Duration:            duration.Kind,
			StartAt:             startAt,
			EndAt:               endAt,
			BufferBeforeMinutes: cfg.BufferBeforeMinutes,
			BufferAfterMinutes:  cfg.BufferAfterMinutes,
			Customer: domain.Customer{
				Name:    req.CustomerName,
				Phone:   req.CustomerPhone,
				Email:   req.CustomerEmail,
				Address: req.CustomerAddress,
				Vehicle: req.Vehicle,
			},
			Notes: req.Notes,
		}

		if uc.opts.AutoConfirm {
			booking.Status = domain.StatusConfirmed
		} else {
			expiresAt := now.Add(uc.opts.HoldTTL).UTC()
			booking.HoldExpiresAt = &expiresAt
		}

		// 3.6. Сохраняем. Уникальный индекс в БД - окончательная проверка
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateBooking: slot taken at write time: %v", err)
				return NewRejectionError(availability.ReasonSlotUnavailable)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %w", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// 4. Конфликт сериализации после всех повторов: слот занят параллельной записью
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateBooking: concurrent write for date=%s, window=%s: %v", req.Date, req.Window, err)
			return nil, NewRejectionError(availability.ReasonSlotUnavailable)
		}

		var rejected *RejectionError
		if errors.As(err, &rejected) || errors.Is(err, ErrInternal) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
	}

	uc.metrics.ObserveBookingCreated(string(result.Status))
	uc.logger.Info("CreateBooking: successfully created booking id=%d, reference=%s, status=%s",
		result.ID, result.Reference, result.Status)

	// Конвертируем в response
	return &Response{
		ID:            result.ID,
		Reference:     result.Reference,
		Status:        string(result.Status),
		Date:          result.DateKey,
		Window:        result.Window,
		Duration:      result.Duration,
		StartAt:       result.StartAt,
		EndAt:         result.EndAt,
		HoldExpiresAt: result.HoldExpiresAt,
		CreatedAt:     result.CreatedAt,
	}, nil
}
