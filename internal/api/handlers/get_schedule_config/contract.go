package get_schedule_config

import (
	"github.com/m04kA/SMC-BookingSlots/internal/service/config/models"
)

type ConfigService interface {
	GetPolicy() (*models.PolicyResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
