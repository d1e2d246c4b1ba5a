package check_slot

import (
	"net/http"

	"github.com/m04kA/SMC-BookingSlots/internal/api/handlers"
)

const msgInvalidRequestBody = "invalid request body"

type Handler struct {
	useCase CheckSlotUseCase
	logger  Logger
}

func NewHandler(useCase CheckSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/availability/check
// Отказ по правилам расписания не ошибка запроса: ответ 200 с valid=false
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /availability/check - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		h.logger.Error("POST /availability/check - Failed to check slot: date=%s, window=%s, error=%v",
			req.Date, req.Window, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /availability/check - date=%s, window=%s, duration=%s, valid=%t",
		req.Date, req.Window, req.Duration, result.Valid)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
