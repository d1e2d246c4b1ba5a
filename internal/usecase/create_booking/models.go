package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingSlots/internal/availability"
)

// Request модель запроса на создание бронирования
type Request struct {
	Date     string                    // YYYY-MM-DD в часовом поясе бизнеса
	Window   string                    // Название окна, например "10am"
	Duration availability.DurationKind // short | long

	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	CustomerAddress string
	Vehicle         *string // Опционально
	Notes           *string // Опционально
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	Reference     uuid.UUID
	Status        string
	Date          string
	Window        string
	Duration      availability.DurationKind
	StartAt       time.Time
	EndAt         time.Time
	HoldExpiresAt *time.Time
	CreatedAt     time.Time
}
