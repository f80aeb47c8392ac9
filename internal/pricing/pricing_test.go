package pricing

import (
	"testing"
	"time"
)

func at(hour, min int) time.Time {
	return time.Date(2024, time.March, 5, hour, min, 0, 0, time.UTC)
}

func TestHourlyAmountTiers(t *testing.T) {
	cases := []struct {
		name  string
		entry time.Time
		exit  time.Time
		want  int64
	}{
		{"45 minutes", at(9, 0), at(9, 45), 50},
		{"exactly one hour", at(9, 0), at(10, 0), 50},
		{"2h01m rounds to 3h", at(9, 0), at(11, 1), 100},
		{"exactly three hours", at(9, 0), at(12, 0), 100},
		{"six hours", at(9, 0), at(15, 0), 150},
		{"6h01m capped", at(9, 0), at(15, 1), 200},
		{"full day capped", at(9, 0), at(9, 0).Add(24 * time.Hour), 200},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HourlyAmount(tc.entry, tc.exit); got != tc.want {
				t.Fatalf("HourlyAmount(%s, %s) = %d, want %d", tc.entry, tc.exit, got, tc.want)
			}
		})
	}
}

func TestHourlyAmountNonPositiveElapsed(t *testing.T) {
	if got := HourlyAmount(at(9, 0), at(9, 0)); got != 50 {
		t.Fatalf("zero elapsed: got %d, want 50", got)
	}
	if got := HourlyAmount(at(10, 0), at(9, 0)); got != 50 {
		t.Fatalf("negative elapsed: got %d, want 50", got)
	}
}

func TestCeilingHours(t *testing.T) {
	if got := CeilingHours(at(9, 0), at(9, 1)); got != 1 {
		t.Fatalf("one minute: got %d, want 1", got)
	}
	if got := CeilingHours(at(9, 0), at(11, 1)); got != 3 {
		t.Fatalf("2h01m: got %d, want 3", got)
	}
	if got := CeilingHours(at(9, 0), at(8, 0)); got != 0 {
		t.Fatalf("negative: got %d, want 0", got)
	}
}

func TestDayPassAmount(t *testing.T) {
	if got := DayPassAmount(); got != 150 {
		t.Fatalf("DayPassAmount() = %d, want 150", got)
	}
}

func TestIsOverstay(t *testing.T) {
	cases := []struct {
		name  string
		entry time.Time
		exit  time.Time
		want  bool
	}{
		{"6h30m is floor 6", at(9, 0), at(15, 30), false},
		{"6h01m is floor 6", at(9, 0), at(15, 1), false},
		{"exactly 7h", at(9, 0), at(16, 0), true},
		{"short stay", at(9, 0), at(9, 30), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsOverstay(tc.entry, tc.exit); got != tc.want {
				t.Fatalf("IsOverstay(%s, %s) = %v, want %v", tc.entry, tc.exit, got, tc.want)
			}
		})
	}
}
