package domain

import (
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingSlots/internal/availability"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusHeld      BookingStatus = "held"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusExpired   BookingStatus = "expired"
)

// IsValid reports whether s is one of the known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusHeld, StatusConfirmed, StatusCancelled, StatusExpired:
		return true
	}
	return false
}

// Customer holds the contact details captured with a booking
type Customer struct {
	Name    string
	Phone   string
	Email   string
	Address string
	Vehicle *string
}

// Booking represents an appointment that occupies a slot in the schedule.
// StartAt and EndAt are absolute instants; DateKey and Window are kept as
// the customer picked them so history survives schedule changes.
type Booking struct {
	ID        int64
	Reference uuid.UUID
	Status    BookingStatus

	DateKey  string
	Window   string
	Duration availability.DurationKind
	StartAt  time.Time
	EndAt    time.Time

	// Buffers are captured at booking time
	BufferBeforeMinutes int
	BufferAfterMinutes  int

	HoldExpiresAt *time.Time

	Customer Customer
	Notes    *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot at now.
// A hold stops blocking the moment it expires, even before the expiry job runs.
func (b *Booking) IsActive(now time.Time) bool {
	switch b.Status {
	case StatusConfirmed:
		return true
	case StatusHeld:
		return b.HoldExpiresAt == nil || now.Before(*b.HoldExpiresAt)
	}
	return false
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusHeld || b.Status == StatusConfirmed
}

// CanBeConfirmed returns true if an unexpired hold can be promoted to confirmed
func (b *Booking) CanBeConfirmed(now time.Time) bool {
	return b.Status == StatusHeld && b.IsActive(now)
}

// Blocker converts the booking into an interval the availability engine
// treats as occupied, widened by the buffers captured at booking time.
func (b *Booking) Blocker() availability.Blocker {
	return availability.BookingBlocker(
		strconv.FormatInt(b.ID, 10),
		b.StartAt,
		b.EndAt,
		b.BufferBeforeMinutes,
		b.BufferAfterMinutes,
	)
}

// BookingsFilter фильтр для выборки бронирований администратором
type BookingsFilter struct {
	FromDateKey string         // Начало периода (включительно), YYYY-MM-DD
	ToDateKey   string         // Конец периода (включительно), YYYY-MM-DD
	Status      *BookingStatus // Фильтр по статусу (опционально)
}
