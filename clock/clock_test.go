package clock

import (
	"testing"
	"time"
)

func TestSampleFromTime(t *testing.T) {
	now := time.Date(2025, time.March, 31, 23, 45, 30, 0, time.UTC)
	s := FromTime(now)

	if s.Hour != 23 {
		t.Errorf("Hour expected 23, got %d", s.Hour)
	}
	if s.Date != "2025-03-31" {
		t.Errorf("Date expected 2025-03-31, got %s", s.Date)
	}
	if s.DateTomorrow != "2025-04-01" {
		t.Errorf("DateTomorrow expected 2025-04-01, got %s", s.DateTomorrow)
	}
	if s.Month != time.March {
		t.Errorf("Month expected March, got %v", s.Month)
	}
	if s.SecondsToNextHour != 3600-(45*60+30) {
		t.Errorf("SecondsToNextHour expected %d, got %d", 3600-(45*60+30), s.SecondsToNextHour)
	}
}

func TestSystemOffset(t *testing.T) {
	base := time.Date(2025, time.June, 1, 23, 30, 0, 0, time.UTC)
	c := System{OffsetHours: 2, now: func() time.Time { return base }}

	s := c.Sample()
	if s.Hour != 1 {
		t.Errorf("offset sample expected hour 1, got %d", s.Hour)
	}
	if s.Date != "2025-06-02" {
		t.Errorf("offset sample expected date 2025-06-02, got %s", s.Date)
	}
}

func TestNextHourTop(t *testing.T) {
	s := FromTime(time.Date(2025, time.June, 1, 12, 30, 59, 0, time.UTC))
	expected := time.Date(2025, time.June, 1, 13, 0, 0, 0, time.UTC)
	if got := s.NextHourTop(); !got.Equal(expected) {
		t.Errorf("NextHourTop() expected %v, got %v", expected, got)
	}
}

func TestTodayAndTomorrowAt(t *testing.T) {
	s := FromTime(time.Date(2025, time.June, 1, 18, 15, 0, 0, time.UTC))

	if got := s.TodayAt(13); !got.Equal(time.Date(2025, time.June, 1, 13, 0, 0, 0, time.UTC)) {
		t.Errorf("TodayAt(13) got %v", got)
	}
	if got := s.TomorrowAt(13); !got.Equal(time.Date(2025, time.June, 2, 13, 0, 0, 0, time.UTC)) {
		t.Errorf("TomorrowAt(13) got %v", got)
	}
}
