package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingSlots/internal/availability"
	"github.com/m04kA/SMC-BookingSlots/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
}

// ListBookingsRequest запрос администратора на список бронирований
type ListBookingsRequest struct {
	From   string  `json:"from"`             // YYYY-MM-DD, включительно
	To     string  `json:"to"`               // YYYY-MM-DD, включительно
	Status *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID        int64                     `json:"id"`
	Reference uuid.UUID                 `json:"reference"`
	Status    string                    `json:"status"`
	Date      string                    `json:"date"`   // "2026-03-11"
	Window    string                    `json:"window"` // "10am"
	Duration  availability.DurationKind `json:"duration"`
	StartAt   time.Time                 `json:"startAt"`
	EndAt     time.Time                 `json:"endAt"`

	HoldExpiresAt *time.Time `json:"holdExpiresAt,omitempty"`

	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerAddress string  `json:"customerAddress"`
	Vehicle         *string `json:"vehicle,omitempty"`
	Notes           *string `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		Status:             string(b.Status),
		Date:               b.DateKey,
		Window:             b.Window,
		Duration:           b.Duration,
		StartAt:            b.StartAt,
		EndAt:              b.EndAt,
		HoldExpiresAt:      b.HoldExpiresAt,
		CustomerName:       b.Customer.Name,
		CustomerPhone:      b.Customer.Phone,
		CustomerEmail:      b.Customer.Email,
		CustomerAddress:    b.Customer.Address,
		Vehicle:            b.Customer.Vehicle,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus с валидацией
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
