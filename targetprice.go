package valuation

import (
	"math"

	"github.com/etnz/valuation/date"
)

// Defaults for the target-price search, expressed per 100 of face value.
const (
	// DefaultTargetXIRR is the household's hurdle rate for screening bonds.
	DefaultTargetXIRR = 0.0801
	// DefaultPriceFloor and DefaultPriceCeiling bracket the search.
	DefaultPriceFloor   = 80.0
	DefaultPriceCeiling = 110.0
	// DefaultPriceTolerance stops the search when the bracket is this narrow.
	DefaultPriceTolerance = 0.1
)

// PriceForTargetXIRR finds the highest settlement price within [floor,
// ceiling] whose XIRR meets or exceeds target, by binary search. XIRR is
// monotonically decreasing in price (paying more buys the same cashflows),
// so when a midpoint qualifies the search continues in the upper half.
//
// template is a projected cashflow schedule (see ProjectedSchedule) whose
// first entry is the settlement placeholder; each probe overwrites it with
// -price. A probe whose XIRR is undefined simply does not qualify; it never
// aborts the search.
//
// The found price is rounded to 2 decimals. ok is false when no price in
// the bracket qualifies.
func PriceForTargetXIRR(dates []date.Date, template []float64, target, floor, ceiling, tolerance float64) (price float64, ok bool) {
	if len(template) == 0 || len(dates) != len(template) {
		return 0, false
	}
	flows := make([]float64, len(template))
	probe := func(p float64) bool {
		copy(flows, template)
		flows[0] = -p
		irr, err := XIRR(dates, flows)
		if err != nil || math.IsNaN(irr) {
			return false
		}
		return irr >= target
	}

	// The ceiling is the best possible answer; check it before bisecting.
	if probe(ceiling) {
		return ceiling, true
	}

	best := math.NaN()
	left, right := floor, ceiling
	for right-left > tolerance {
		mid := (left + right) / 2
		if probe(mid) {
			// mid qualifies, look for a higher price that still does
			best = mid
			left = mid
		} else {
			right = mid
		}
	}
	if math.IsNaN(best) {
		return 0, false
	}
	// Floor to the paisa, never round half-up: best sits at most tolerance
	// below the true break-even, and rounding up could report a price whose
	// yield falls short of the target. A price quoted by this function must
	// itself qualify.
	return math.Floor(best*100) / 100, true
}
