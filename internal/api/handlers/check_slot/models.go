package check_slot

import (
	"github.com/m04kA/SMC-BookingSlots/internal/availability"
	checkSlot "github.com/m04kA/SMC-BookingSlots/internal/usecase/check_slot"
)

// CheckSlotRequest HTTP request model
type CheckSlotRequest struct {
	Date     string `json:"date"`     // "2026-03-11"
	Window   string `json:"window"`   // "10am"
	Duration string `json:"duration"` // "short" | "long"
}

// CheckSlotResponse HTTP response model
type CheckSlotResponse struct {
	Valid   bool   `json:"valid"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CheckSlotRequest) ToUseCaseRequest() *checkSlot.Request {
	return &checkSlot.Request{
		Date:     r.Date,
		Window:   r.Window,
		Duration: availability.DurationKind(r.Duration),
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkSlot.Response) *CheckSlotResponse {
	return &CheckSlotResponse{
		Valid:   resp.Valid,
		Reason:  string(resp.Reason),
		Message: resp.Message,
	}
}
