package sync_calendar

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BookingSlots/internal/api/handlers"
	syncCalendar "github.com/m04kA/SMC-BookingSlots/internal/usecase/sync_calendar"
)

const (
	msgCalendarDisabled    = "calendar sync is disabled"
	msgCalendarUnavailable = "calendar is unavailable, cached events are kept"
)

type Handler struct {
	useCase SyncCalendarUseCase
	logger  Logger
}

// NewHandler useCase может быть nil, если интеграция выключена в конфиге
func NewHandler(useCase SyncCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/calendar/sync
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.useCase == nil {
		h.logger.Warn("POST /admin/calendar/sync - Calendar integration is disabled")
		handlers.RespondNotFound(w, msgCalendarDisabled)
		return
	}

	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, syncCalendar.ErrCalendarUnavailable):
			h.logger.Warn("POST /admin/calendar/sync - Calendar unavailable: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgCalendarUnavailable)

		default:
			h.logger.Error("POST /admin/calendar/sync - Failed to sync calendar: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/calendar/sync - Calendar synced successfully: events=%d", result.Events)
	handlers.RespondJSON(w, http.StatusOK, result)
}
