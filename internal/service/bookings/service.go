package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingSlots/internal/availability"
	"github.com/m04kA/SMC-BookingSlots/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BookingSlots/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BookingSlots/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo  BookingRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// GetByReference получает бронирование по публичному коду клиента
func (s *Service) GetByReference(ctx context.Context, reference string) (*models.BookingResponse, error) {
	s.logger.Info("GetByReference: fetching booking reference=%s", reference)

	if _, err := uuid.Parse(reference); err != nil {
		s.logger.Warn("GetByReference: invalid reference=%q", reference)
		return nil, fmt.Errorf("%w: invalid reference", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByReference: booking reference=%s not found", reference)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByReference: repository error for reference=%s: %v", reference, err)
		return nil, fmt.Errorf("%w: GetByReference - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// Cancel отменяет бронирование по коду клиента
// Клиент может отменить только активное бронирование, которое еще не началось
func (s *Service) Cancel(ctx context.Context, reference string, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking reference=%s", reference)

	if _, err := uuid.Parse(reference); err != nil {
		s.logger.Warn("Cancel: invalid reference=%q", reference)
		return fmt.Errorf("%w: invalid reference", ErrInvalidInput)
	}

	reason, err := normalizeReason(req.CancellationReason)
	if err != nil {
		return err
	}

	now := s.timeProvider.Now()

	// Чтение и обновление в одной транзакции: строка блокируется FOR UPDATE
	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование
		booking, err := s.bookingRepo.GetByReference(txCtx, reference)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				s.logger.Warn("Cancel: booking reference=%s not found", reference)
				return ErrBookingNotFound
			}
			s.logger.Error("Cancel: repository error for reference=%s: %v", reference, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		// 2. Проверяем, можно ли отменить бронирование
		if !booking.CanBeCancelled() || !booking.IsActive(now) || !now.Before(booking.StartAt) {
			s.logger.Warn("Cancel: booking reference=%s cannot be cancelled, status=%s", reference, booking.Status)
			return ErrCannotCancel
		}

		// 3. Отменяем бронирование
		return s.cancel(txCtx, "Cancel", booking.ID, reason)
	})
}

// CancelByAdmin отменяет любое активное бронирование по ID
func (s *Service) CancelByAdmin(ctx context.Context, id int64, req *models.CancelBookingRequest) error {
	s.logger.Info("CancelByAdmin: cancelling booking id=%d", id)

	reason, err := normalizeReason(req.CancellationReason)
	if err != nil {
		return err
	}

	return s.txManager.Do(ctx, func(txCtx context.Context) error {
		booking, err := s.getByID(txCtx, "CancelByAdmin", id)
		if err != nil {
			return err
		}

		if !booking.CanBeCancelled() {
			s.logger.Warn("CancelByAdmin: booking id=%d cannot be cancelled, status=%s", id, booking.Status)
			return ErrCannotCancel
		}

		return s.cancel(txCtx, "CancelByAdmin", id, reason)
	})
}

// Confirm подтверждает held бронирование, пока hold не истек
func (s *Service) Confirm(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Confirm: confirming booking id=%d", id)

	now := s.timeProvider.Now()
	var result *domain.Booking

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Получаем бронирование
		booking, err := s.getByID(txCtx, "Confirm", id)
		if err != nil {
			return err
		}

		// 2. Проверяем статус и срок hold
		if !booking.CanBeConfirmed(now) {
			s.logger.Warn("Confirm: booking id=%d cannot be confirmed, status=%s", id, booking.Status)
			return ErrCannotConfirm
		}

		// 3. Обновляем статус
		if err := s.bookingRepo.UpdateStatus(txCtx, id, domain.StatusConfirmed); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Confirm: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
		}

		booking.Status = domain.StatusConfirmed
		booking.HoldExpiresAt = nil
		booking.UpdatedAt = now
		result = booking
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Confirm: successfully confirmed booking id=%d", id)
	return models.FromDomainBooking(result), nil
}

// ListForDates получает бронирования за период по локальной дате слота
// Период ограничен domain.MaxListRangeDays
func (s *Service) ListForDates(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("ListForDates: from=%s, to=%s, status=%v", req.From, req.To, req.Status)

	// 1. Валидируем период
	from, err := availability.ParseDateKey(req.From)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid from date", ErrInvalidInput)
	}
	to, err := availability.ParseDateKey(req.To)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid to date", ErrInvalidInput)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: to is before from", ErrInvalidTimeRange)
	}
	if days := int(to.Sub(from).Hours() / 24); days >= domain.MaxListRangeDays {
		return nil, fmt.Errorf("%w: range exceeds %d days", ErrInvalidTimeRange, domain.MaxListRangeDays)
	}

	filter := domain.BookingsFilter{FromDateKey: req.From, ToDateKey: req.To}

	// 2. Конвертируем статус если указан
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListForDates: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	// 3. Получаем бронирования
	bookings, err := s.bookingRepo.ListByDateRange(ctx, filter)
	if err != nil {
		s.logger.Error("ListForDates: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListForDates - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForDates: successfully fetched %d bookings", len(bookings))
	return models.FromDomainBookingList(bookings), nil
}

// Вспомогательные методы

func (s *Service) getByID(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return booking, nil
}

func (s *Service) cancel(ctx context.Context, op string, id int64, reason string) error {
	if err := s.bookingRepo.Cancel(ctx, id, reason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found during cancellation", op, id)
			return ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, id, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}

	s.logger.Info("%s: successfully cancelled booking id=%d", op, id)
	return nil
}

func normalizeReason(reason string) (string, error) {
	reason = strings.TrimSpace(reason)
	if utf8.RuneCountInString(reason) > domain.MaxCancellationReasonLength {
		return "", fmt.Errorf("%w: cancellation reason must be at most %d characters",
			ErrInvalidInput, domain.MaxCancellationReasonLength)
	}
	return reason, nil
}
