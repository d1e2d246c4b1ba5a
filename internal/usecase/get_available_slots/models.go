package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BookingSlots/internal/availability"
)

// Duration вариант длительности работ
type Duration struct {
	Kind    availability.DurationKind
	Label   string
	Minutes int
}

// Response каталог доступных дней
type Response struct {
	TimeZone    string
	GeneratedAt time.Time
	Durations   []Duration
	Days        []availability.BookableDay
}
