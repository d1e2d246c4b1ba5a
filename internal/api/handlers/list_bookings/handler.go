package list_bookings

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingSlots/internal/api/handlers"
	"github.com/m04kA/SMC-BookingSlots/internal/service/bookings"
)

const (
	msgMissingFrom   = "query parameter 'from' is required"
	msgInvalidParams = "invalid query parameters"
	msgInvalidRange  = "invalid date range"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bookings
// Query params: from (YYYY-MM-DD, required), to (YYYY-MM-DD), status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	fromStr := query.Get("from")
	if fromStr == "" {
		h.logger.Warn("GET /admin/bookings - Missing from")
		handlers.RespondBadRequest(w, msgMissingFrom)
		return
	}

	serviceReq := ToServiceRequest(fromStr, query.Get("to"), query.Get("status"))

	result, err := h.service.ListForDates(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /admin/bookings - Invalid parameters: %v", err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, bookings.ErrInvalidTimeRange):
			h.logger.Warn("GET /admin/bookings - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /admin/bookings - Failed to list bookings: from=%s, to=%s, error=%v",
				serviceReq.From, serviceReq.To, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/bookings - Bookings retrieved successfully: from=%s, to=%s, count=%d",
		serviceReq.From, serviceReq.To, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
