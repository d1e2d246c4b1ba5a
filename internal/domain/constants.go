package domain

import "time"

// Default values
const (
	DefaultHoldTTL = 30 * time.Minute
)

// Business validation constants
const (
	MaxCustomerNameLength       = 120
	MaxPhoneLength              = 32
	MaxEmailLength              = 254
	MaxAddressLength            = 300
	MaxVehicleLength            = 120
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxListRangeDays            = 62
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы бронирований, которые занимают слот
// held учитывается только до истечения hold_expires_at
var BlockingStatuses = []BookingStatus{
	StatusHeld,
	StatusConfirmed,
}
