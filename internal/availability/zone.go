package availability

import (
	"errors"
	"fmt"
	"time"
)

// DateKeyLayout is the calendar-date grammar of day keys.
const DateKeyLayout = "2006-01-02"

// ErrMalformedDate is returned for day keys that are not real YYYY-MM-DD dates.
var ErrMalformedDate = errors.New("availability: malformed date")

// Zone converts between UTC instants and the business's wall clock.
// The UTC offset is resolved for every date separately, so DST changes are honoured.
type Zone struct {
	loc *time.Location
}

// LoadZone loads an IANA zone such as "Pacific/Auckland".
func LoadZone(name string) (Zone, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Zone{}, fmt.Errorf("%w: unknown time zone %q: %v", ErrInvalidConfig, name, err)
	}
	return Zone{loc: loc}, nil
}

// DateKey returns the local calendar date of an instant, independent of the host zone.
func (z Zone) DateKey(t time.Time) string {
	return t.In(z.loc).Format(DateKeyLayout)
}

// Hour returns the local wall-clock hour (0..23) of an instant.
func (z Zone) Hour(t time.Time) int {
	return t.In(z.loc).Hour()
}

// InstantFor returns the UTC instant of the given local date and hour.
func (z Zone) InstantFor(dateKey string, hour int) (time.Time, error) {
	date, err := ParseDateKey(dateKey)
	if err != nil {
		return time.Time{}, err
	}
	return z.at(date, hour), nil
}

// at resolves hour:00 on the civil date carried by date (UTC midnight).
func (z Zone) at(date time.Time, hour int) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, z.loc).UTC()
}

// today returns the local calendar date of now as a UTC-midnight civil date.
func (z Zone) today(now time.Time) time.Time {
	y, m, d := now.In(z.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDateKey parses a strict YYYY-MM-DD key into a civil date at UTC midnight.
func ParseDateKey(key string) (time.Time, error) {
	if len(key) != len(DateKeyLayout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, key)
	}
	date, err := time.Parse(DateKeyLayout, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrMalformedDate, key, err)
	}
	return date, nil
}

func isWeekend(wd time.Weekday) bool {
	return wd == time.Saturday || wd == time.Sunday
}
