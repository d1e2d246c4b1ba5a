package check_slot

import "github.com/m04kA/SMC-BookingSlots/internal/availability"

// Request слот, который выбрал клиент
type Request struct {
	Date     string // YYYY-MM-DD в часовом поясе бизнеса
	Window   string // Название окна, например "10am"
	Duration availability.DurationKind
}

// Response результат проверки слота
type Response struct {
	Valid   bool
	Reason  availability.Reason
	Message string
}
