package valuation

import (
	"errors"
	"math"
	"testing"

	"github.com/etnz/valuation/date"
)

func TestXIRROneYearRoundTrip(t *testing.T) {
	// exactly 365 days apart, so the rate is the simple return
	dates := []date.Date{date.New(2023, 1, 1), date.New(2024, 1, 1)}
	flows := []float64{-96.5, 100}

	r, err := XIRR(dates, flows)
	if err != nil {
		t.Fatalf("XIRR: %v", err)
	}
	want := (100 - 96.5) / 96.5
	if math.Abs(r-want) > 1e-6 {
		t.Errorf("XIRR = %g, want %g", r, want)
	}
}

func TestXIRRMultipleFlows(t *testing.T) {
	dates := []date.Date{
		date.New(2023, 1, 1),
		date.New(2023, 7, 1),
		date.New(2024, 1, 1),
	}
	flows := []float64{-100, 3.63, 103.63}

	r, err := XIRR(dates, flows)
	if err != nil {
		t.Fatalf("XIRR: %v", err)
	}
	// par-ish bond held one year, a touch above the 7.26% coupon because
	// the mid-year coupon compounds
	if r < 0.072 || r > 0.076 {
		t.Errorf("XIRR = %g, want around 0.073", r)
	}

	// the solution must zero the discounted sum
	npv := 0.0
	for i, cf := range flows {
		days := float64(dates[i].Sub(dates[0]))
		npv += cf / math.Pow(1+r, days/365)
	}
	if math.Abs(npv) > 1e-6 {
		t.Errorf("npv at solution = %g, want 0", npv)
	}
}

func TestXIRRSameSignNoSolution(t *testing.T) {
	dates := []date.Date{date.New(2023, 1, 1), date.New(2024, 1, 1)}
	_, err := XIRR(dates, []float64{100, 100})
	if !errors.Is(err, ErrNoConvergence) {
		t.Fatalf("same-sign cashflows must not converge, got %v", err)
	}
}

func TestXIRRInputErrors(t *testing.T) {
	if _, err := XIRR(nil, nil); err == nil {
		t.Error("empty schedule must fail")
	}
	if _, err := XIRR([]date.Date{date.New(2023, 1, 1)}, []float64{1, 2}); err == nil {
		t.Error("mismatched lengths must fail")
	}
}

func TestForwardXIRR(t *testing.T) {
	dates := []date.Date{date.New(2023, 1, 1), date.New(2025, 1, 1)}
	flows := []float64{-96.5, 100}
	asOf := date.New(2024, 1, 1)

	r, err := ForwardXIRR(dates, flows, 98, asOf)
	if err != nil {
		t.Fatalf("ForwardXIRR: %v", err)
	}
	// buy the remaining 100 at 98 with 366 days to go
	want := math.Pow(100.0/98.0, 365.0/366.0) - 1
	if math.Abs(r-want) > 1e-6 {
		t.Errorf("ForwardXIRR = %g, want %g", r, want)
	}
}

func TestForwardXIRRIgnoresPastFlows(t *testing.T) {
	// the historical purchase price must not influence the forward yield
	cheap := []float64{-50, 100}
	dear := []float64{-99, 100}
	dates := []date.Date{date.New(2023, 1, 1), date.New(2025, 1, 1)}
	asOf := date.New(2024, 1, 1)

	a, err := ForwardXIRR(dates, cheap, 98, asOf)
	if err != nil {
		t.Fatal(err)
	}
	b, err := ForwardXIRR(dates, dear, 98, asOf)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("forward yield depends on sunk cost: %g vs %g", a, b)
	}
}

func TestForwardXIRRNoFutureFlows(t *testing.T) {
	dates := []date.Date{date.New(2023, 1, 1), date.New(2024, 1, 1)}
	flows := []float64{-96.5, 100}

	r, err := ForwardXIRR(dates, flows, 98, date.New(2024, 6, 1))
	if err != nil {
		t.Fatalf("ForwardXIRR: %v", err)
	}
	if !math.IsNaN(r) {
		t.Errorf("no future cashflows must yield NaN, got %g", r)
	}
}

func TestForwardXIRRExcludesAsOfDate(t *testing.T) {
	// a flow dated exactly asOf is not a future flow
	dates := []date.Date{date.New(2023, 1, 1), date.New(2024, 1, 1)}
	flows := []float64{-96.5, 100}

	r, err := ForwardXIRR(dates, flows, 98, date.New(2024, 1, 1))
	if err != nil {
		t.Fatalf("ForwardXIRR: %v", err)
	}
	if !math.IsNaN(r) {
		t.Errorf("flow on the valuation date must not count as future, got %g", r)
	}
}
