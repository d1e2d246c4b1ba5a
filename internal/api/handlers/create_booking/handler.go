package create_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-BookingSlots/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-BookingSlots/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidInput       = "invalid booking details"
	msgRejected           = "this slot cannot be booked"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		// Сообщение клиенту берем из причины отказа движка, если она есть
		message := rejectionMessage(err)

		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, window=%s", req.Date, req.Window)
			handlers.RespondConflict(w, message)

		case errors.Is(err, createBooking.ErrInvalidInput),
			errors.Is(err, createBooking.ErrDateInPast),
			errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Invalid request: date=%s, window=%s, error=%v", req.Date, req.Window, err)
			handlers.RespondBadRequest(w, message)

		case errors.Is(err, createBooking.ErrTooLateToBook),
			errors.Is(err, createBooking.ErrOutsideOperatingHours):
			h.logger.Warn("POST /bookings - Rejected by schedule rules: date=%s, window=%s, error=%v", req.Date, req.Window, err)
			handlers.RespondUnprocessable(w, message)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: date=%s, window=%s, error=%v",
				req.Date, req.Window, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, reference=%s, status=%s",
		result.ID, result.Reference, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

func rejectionMessage(err error) string {
	var rejected *createBooking.RejectionError
	if errors.As(err, &rejected) {
		return rejected.Reason.Message()
	}
	if errors.Is(err, createBooking.ErrInvalidInput) {
		if detail := strings.TrimPrefix(err.Error(), createBooking.ErrInvalidInput.Error()+": "); detail != err.Error() {
			return detail
		}
		return msgInvalidInput
	}
	return msgRejected
}
