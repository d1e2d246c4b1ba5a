package availability

// Reason categorises why a slot was rejected. The zero value means accepted.
type Reason string

const (
	ReasonNone               Reason = ""
	ReasonInvalidFormat      Reason = "invalid_format"
	ReasonDateInPast         Reason = "date_in_past"
	ReasonTooFarInAdvance    Reason = "too_far_in_advance"
	ReasonSameDayClosed      Reason = "same_day_closed"
	ReasonInsufficientNotice Reason = "insufficient_notice"
	ReasonNextDayEarly       Reason = "next_day_early"
	ReasonOutsideHours       Reason = "outside_operating_hours"
	ReasonSlotUnavailable    Reason = "slot_unavailable"
)

// Message returns customer-facing wording for the reason.
func (r Reason) Message() string {
	switch r {
	case ReasonNone:
		return ""
	case ReasonInvalidFormat:
		return "Invalid date/time format."
	case ReasonDateInPast:
		return "That date is in the past."
	case ReasonTooFarInAdvance:
		return "That date is too far in advance."
	case ReasonSameDayClosed:
		return "Same-day bookings are closed for today."
	case ReasonInsufficientNotice:
		return "That time is too soon, please pick a later slot."
	case ReasonNextDayEarly:
		return "Early slots for tomorrow are no longer available."
	case ReasonOutsideHours:
		return "That job would run past closing time."
	case ReasonSlotUnavailable:
		return "Sorry, that slot is no longer available."
	default:
		return "That slot cannot be booked."
	}
}

// Result is the outcome of validating a single slot.
type Result struct {
	Valid  bool
	Reason Reason
}

func accept() Result {
	return Result{Valid: true}
}

func reject(r Reason) Result {
	return Result{Valid: false, Reason: r}
}
