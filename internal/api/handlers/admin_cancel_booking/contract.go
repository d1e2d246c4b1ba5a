package admin_cancel_booking

import (
	"context"

	"github.com/m04kA/SMC-BookingSlots/internal/service/bookings/models"
)

type BookingService interface {
	CancelByAdmin(ctx context.Context, id int64, req *models.CancelBookingRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
