package valuation

import (
	"testing"

	"github.com/etnz/valuation/date"
)

func TestIsTradingDay(t *testing.T) {
	cal := NSE()
	tests := []struct {
		day  string
		want bool
	}{
		{"2024-01-10", true},  // Wednesday
		{"2024-01-13", false}, // Saturday
		{"2024-01-14", false}, // Sunday
		{"2024-01-26", false}, // Republic Day, a Friday
		{"2024-01-29", true},  // Monday after
	}
	for _, tc := range tests {
		if got := cal.IsTradingDay(date.MustParse(tc.day)); got != tc.want {
			t.Errorf("IsTradingDay(%s) = %v, want %v", tc.day, got, tc.want)
		}
	}
}

func TestShiftForward(t *testing.T) {
	cal := NSE()
	tests := []struct {
		day  string
		lag  int
		want string
	}{
		{"2024-01-10", 2, "2024-01-12"}, // Wed + 2 trading days = Fri
		{"2024-01-12", 2, "2024-01-16"}, // Fri + 2 trading days = Tue
		{"2024-01-25", 1, "2024-01-29"}, // Thu, skips Republic Day Fri and the weekend
		{"2024-01-13", 0, "2024-01-15"}, // Saturday rolls to Monday
		{"2024-01-15", 0, "2024-01-15"}, // trading day is returned unchanged
		{"2033-01-15", 0, "2033-01-17"}, // Saturday in 2033 rolls to Monday
	}
	for _, tc := range tests {
		got := cal.ShiftForward(date.MustParse(tc.day), tc.lag)
		if got.String() != tc.want {
			t.Errorf("ShiftForward(%s, %d) = %s, want %s", tc.day, tc.lag, got, tc.want)
		}
	}
}

func TestShiftForwardDeterministic(t *testing.T) {
	cal := NSE()
	d := date.MustParse("2024-06-14")
	first := cal.ShiftForward(d, 3)
	for i := 0; i < 5; i++ {
		if got := cal.ShiftForward(d, 3); got != first {
			t.Fatalf("ShiftForward is not deterministic: %s then %s", first, got)
		}
	}
}
