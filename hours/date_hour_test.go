package hours

import (
	"testing"
	"time"
)

func TestDateHourString(t *testing.T) {
	dh := DateHour{Date: "2025-01-01", Hour: 5}
	expected := "2025-01-01 05"
	if s := dh.String(); s != expected {
		t.Errorf("String() expected %q, got %q", expected, s)
	}
}

func TestDateHourAdd(t *testing.T) {
	tests := []struct {
		name     string
		input    DateHour
		addHours int
		expected DateHour
	}{
		{
			name:     "add within same day",
			input:    DateHour{Date: "2025-01-01", Hour: 10},
			addHours: 2,
			expected: DateHour{Date: "2025-01-01", Hour: 12},
		},
		{
			name:     "add crossing midnight",
			input:    DateHour{Date: "2025-01-01", Hour: 23},
			addHours: 2,
			expected: DateHour{Date: "2025-01-02", Hour: 1},
		},
		{
			name:     "add negative hours (subtract)",
			input:    DateHour{Date: "2025-01-01", Hour: 1},
			addHours: -2,
			expected: DateHour{Date: "2024-12-31", Hour: 23},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.input.Add(tt.addHours)
			if result != tt.expected {
				t.Errorf("Add(%d) expected %+v, got %+v", tt.addHours, tt.expected, result)
			}
		})
	}
}

func TestDateHourCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     DateHour
		expected int
	}{
		{
			name:     "equal",
			a:        DateHour{Date: "2025-01-01", Hour: 10},
			b:        DateHour{Date: "2025-01-01", Hour: 10},
			expected: 0,
		},
		{
			name:     "earlier hour same day",
			a:        DateHour{Date: "2025-01-01", Hour: 9},
			b:        DateHour{Date: "2025-01-01", Hour: 10},
			expected: -1,
		},
		{
			name:     "later date beats earlier hour",
			a:        DateHour{Date: "2025-01-02", Hour: 0},
			b:        DateHour{Date: "2025-01-01", Hour: 23},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Compare(tt.b); got != tt.expected {
				t.Errorf("Compare() expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestDateHourIsZero(t *testing.T) {
	var dh DateHour
	if !dh.IsZero() {
		t.Errorf("expected a zero value DateHour to be zero")
	}
	dh = DateHour{Date: "2025-01-01", Hour: 0}
	if dh.IsZero() {
		t.Errorf("expected a non-zero DateHour (non-empty Date) not to be zero")
	}
}

func TestFromTime(t *testing.T) {
	tm := time.Date(2025, time.January, 1, 15, 30, 0, 0, time.UTC)
	dh := FromTime(tm)
	expected := DateHour{Date: "2025-01-01", Hour: 15}
	if dh != expected {
		t.Errorf("FromTime() expected %+v, got %+v", expected, dh)
	}

	var zero time.Time
	if !FromTime(zero).IsZero() {
		t.Errorf("FromTime() with zero time expected a zero DateHour")
	}
}

func TestFromLocalIso(t *testing.T) {
	dh, err := FromLocalIso("2025-03-01T13:00:00")
	if err != nil {
		t.Fatalf("FromLocalIso() unexpected error: %v", err)
	}
	expected := DateHour{Date: "2025-03-01", Hour: 13}
	if dh != expected {
		t.Errorf("FromLocalIso() expected %+v, got %+v", expected, dh)
	}

	if _, err := FromLocalIso("not a timestamp"); err == nil {
		t.Errorf("FromLocalIso() expected error for invalid input")
	}
}
