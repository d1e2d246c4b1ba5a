package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingSlots/internal/availability"
	createBooking "github.com/m04kA/SMC-BookingSlots/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	Date            string  `json:"date"`     // "2026-03-11"
	Window          string  `json:"window"`   // "10am"
	Duration        string  `json:"duration"` // "short" | "long"
	CustomerName    string  `json:"customerName"`
	CustomerPhone   string  `json:"customerPhone"`
	CustomerEmail   string  `json:"customerEmail"`
	CustomerAddress string  `json:"customerAddress"`
	Vehicle         *string `json:"vehicle,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64                     `json:"id"`
	Reference     uuid.UUID                 `json:"reference"`
	Status        string                    `json:"status"`
	Date          string                    `json:"date"`
	Window        string                    `json:"window"`
	Duration      availability.DurationKind `json:"duration"`
	StartAt       string                    `json:"startAt"`
	EndAt         string                    `json:"endAt"`
	HoldExpiresAt *string                   `json:"holdExpiresAt,omitempty"`
	CreatedAt     string                    `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		Date:            r.Date,
		Window:          r.Window,
		Duration:        availability.DurationKind(r.Duration),
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		CustomerEmail:   r.CustomerEmail,
		CustomerAddress: r.CustomerAddress,
		Vehicle:         r.Vehicle,
		Notes:           r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:        resp.ID,
		Reference: resp.Reference,
		Status:    resp.Status,
		Date:      resp.Date,
		Window:    resp.Window,
		Duration:  resp.Duration,
		StartAt:   resp.StartAt.Format(time.RFC3339),
		EndAt:     resp.EndAt.Format(time.RFC3339),
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
	}
	if resp.HoldExpiresAt != nil {
		expires := resp.HoldExpiresAt.Format(time.RFC3339)
		out.HoldExpiresAt = &expires
	}
	return out
}
