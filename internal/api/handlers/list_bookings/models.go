package list_bookings

import (
	"github.com/m04kA/SMC-BookingSlots/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
// Если to не указан, выбирается один день from
func ToServiceRequest(fromStr, toStr, statusStr string) *models.ListBookingsRequest {
	req := &models.ListBookingsRequest{
		From: fromStr,
		To:   toStr,
	}

	if toStr == "" {
		req.To = fromStr
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req
}
