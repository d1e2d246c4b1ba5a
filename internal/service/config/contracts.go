package config

import "github.com/m04kA/SMC-BookingSlots/internal/availability"

// PolicySource источник действующей политики расписания
type PolicySource interface {
	Config() availability.Config
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}
