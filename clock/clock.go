package clock

import (
	"time"

	"github.com/askov/ladepris-go/hours"
)

const dateLayout = "2006-01-02"

// Sample is an immutable snapshot of "now" with the configured offset
// already applied. It is taken once per refresh and threaded through
// the whole pipeline so every sub-step sees the same instant.
type Sample struct {
	Now               time.Time
	Hour              int
	Date              string
	DateTomorrow      string
	Month             time.Month
	SecondsToNextHour int
}

// NextHourTop is the start of the clock hour following Now.
func (s Sample) NextHourTop() time.Time {
	return s.Now.Truncate(time.Hour).Add(time.Hour)
}

// TodayAt returns today's date at the given whole hour.
func (s Sample) TodayAt(hour int) time.Time {
	y, m, d := s.Now.Date()
	return time.Date(y, m, d, hour, 0, 0, 0, s.Now.Location())
}

// TomorrowAt returns tomorrow's date at the given whole hour.
func (s Sample) TomorrowAt(hour int) time.Time {
	return s.TodayAt(hour).AddDate(0, 0, 1)
}

func (s Sample) DateHour() hours.DateHour {
	return hours.FromTime(s.Now)
}

type Clock interface {
	Sample() Sample
}

// System reads the system clock, shifted by a fixed number of whole
// hours. The offset stands in for timezone configuration on hosts
// where the system clock can't be adjusted.
type System struct {
	OffsetHours int

	// now is the time source, replaceable in tests.
	now func() time.Time
}

func NewSystem(offsetHours int) System {
	return System{OffsetHours: offsetHours, now: time.Now}
}

// NewFixed returns a clock that always samples the given instant.
// Intended for tests and one-shot tooling.
func NewFixed(t time.Time) System {
	return System{now: func() time.Time { return t }}
}

func (c System) Sample() Sample {
	src := c.now
	if src == nil {
		src = time.Now
	}
	now := src().Add(time.Duration(c.OffsetHours) * time.Hour)
	return FromTime(now)
}

// FromTime builds a Sample for an arbitrary instant.
func FromTime(now time.Time) Sample {
	return Sample{
		Now:               now,
		Hour:              now.Hour(),
		Date:              now.Format(dateLayout),
		DateTomorrow:      now.AddDate(0, 0, 1).Format(dateLayout),
		Month:             now.Month(),
		SecondsToNextHour: 3600 - (now.Minute()*60 + now.Second()),
	}
}
