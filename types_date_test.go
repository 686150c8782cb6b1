package coinfolio

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{" 2025-01-15 ", NewDate(2025, time.January, 15), false},
		// full timestamps as found in exchange exports
		{"2025-01-15T10:30:00Z", NewDate(2025, time.January, 15), false},
		{"invalid-date", Date{}, true},
		{"", Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDate_Ordering(t *testing.T) {
	early := NewDate(2025, time.January, 10)
	late := NewDate(2025, time.February, 1)

	if !early.Before(late) || late.Before(early) {
		t.Error("Before() broken")
	}
	if !late.After(early) || early.After(late) {
		t.Error("After() broken")
	}
	if early.Before(early) || early.After(early) {
		t.Error("a date is neither before nor after itself")
	}
}

func TestDate_Add(t *testing.T) {
	d := NewDate(2025, time.January, 31)
	if got, want := d.Add(1), NewDate(2025, time.February, 1); got != want {
		t.Errorf("Add(1) = %v, want normalized %v", got, want)
	}
	if got, want := d.Add(-31), NewDate(2024, time.December, 31); got != want {
		t.Errorf("Add(-31) = %v, want %v", got, want)
	}
}

func TestDate_JSON(t *testing.T) {
	tests := []struct {
		name string
		date Date
		json string
	}{
		{"zero date", Date{}, `""`},
		{"regular date", NewDate(2024, 5, 21), `"2024-05-21"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.date)
			if err != nil {
				t.Fatalf("json.Marshal() error = %v", err)
			}
			if string(got) != tt.json {
				t.Errorf("json.Marshal() = %s, want %s", got, tt.json)
			}

			var back Date
			if err := json.Unmarshal(got, &back); err != nil {
				t.Fatalf("json.Unmarshal() error = %v", err)
			}
			if back != tt.date {
				t.Errorf("round trip = %v, want %v", back, tt.date)
			}
		})
	}

	var d Date
	if err := json.Unmarshal([]byte(`"not-a-date"`), &d); err == nil {
		t.Error("json.Unmarshal() accepted an invalid date")
	}
}
