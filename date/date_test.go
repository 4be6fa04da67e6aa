package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestFromTime(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	testCases := []struct {
		name string
		in   time.Time
		want Date
	}{
		{"UTC midday", time.Date(2025, time.March, 4, 12, 0, 0, 0, time.UTC), New(2025, time.March, 4)},
		{"last nanosecond of the day", time.Date(2025, time.March, 4, 23, 59, 59, 999, time.UTC), New(2025, time.March, 4)},
		{"wall clock of the timestamp location", time.Date(2025, time.March, 5, 0, 30, 0, 0, paris), New(2025, time.March, 5)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FromTime(tc.in); got != tc.want {
				t.Errorf("FromTime(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestStartOfEndOf(t *testing.T) {
	testCases := []struct {
		name      string
		in        Date
		period    Period
		wantStart Date
		wantEnd   Date
	}{
		{"daily", New(2025, time.September, 10), Daily, New(2025, time.September, 10), New(2025, time.September, 10)},
		{"weekly on a Wednesday", New(2025, time.September, 10), Weekly, New(2025, time.September, 8), New(2025, time.September, 14)},
		{"weekly on a Monday", New(2025, time.September, 8), Weekly, New(2025, time.September, 8), New(2025, time.September, 14)},
		{"weekly on a Sunday", New(2025, time.September, 14), Weekly, New(2025, time.September, 8), New(2025, time.September, 14)},
		{"weekly across years", New(2026, time.January, 1), Weekly, New(2025, time.December, 29), New(2026, time.January, 4)},
		{"monthly leap year", New(2024, time.February, 15), Monthly, New(2024, time.February, 1), New(2024, time.February, 29)},
		{"quarterly", New(2025, time.May, 20), Quarterly, New(2025, time.April, 1), New(2025, time.June, 30)},
		{"yearly", New(2025, time.May, 20), Yearly, New(2025, time.January, 1), New(2025, time.December, 31)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.StartOf(tc.period); got != tc.wantStart {
				t.Errorf("StartOf(%v) = %v, want %v", tc.period, got, tc.wantStart)
			}
			if got := tc.in.EndOf(tc.period); got != tc.wantEnd {
				t.Errorf("EndOf(%v) = %v, want %v", tc.period, got, tc.wantEnd)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{"2025-01-15", New(2025, time.January, 15), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{"15/01/2025", Date{}, true},
		{"invalid-date", Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestDate_JSON(t *testing.T) {
	d := New(2025, time.August, 3)
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if got, want := string(b), `"2025-08-03"`; got != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
	var back Date
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back != d {
		t.Errorf("Unmarshal() = %v, want %v", back, d)
	}
}
