package valuation

import (
	"fmt"
	"math"

	"github.com/etnz/valuation/date"
	"gonum.org/v1/gonum/floats"
)

// maxIterations bounds the Newton iterations of every solver in this file.
const maxIterations = 100

// newtonTolerance is the step size under which Newton's method is considered
// converged.
const newtonTolerance = 1e-8

// ErrNoConvergence is wrapped by solver errors when Newton's method fails
// for every starting guess. Callers must treat it as "yield undefined for
// this cashflow shape" (for example, all cashflows of the same sign).
var ErrNoConvergence = fmt.Errorf("solver did not converge")

// newton runs Newton's method with an analytic derivative from x0.
func newton(f, fprime func(float64) float64, x0 float64) (float64, error) {
	x := x0
	for i := 0; i < maxIterations; i++ {
		fx := f(x)
		dfx := fprime(x)
		if dfx == 0 || math.IsNaN(fx) || math.IsNaN(dfx) {
			return 0, fmt.Errorf("%w: flat derivative at %g", ErrNoConvergence, x)
		}
		step := fx / dfx
		x -= step
		if math.Abs(step) < newtonTolerance {
			return x, nil
		}
	}
	return 0, fmt.Errorf("%w: after %d iterations from guess %g", ErrNoConvergence, maxIterations, x0)
}

// XIRR solves for the annualized money-weighted rate r such that
//
//	Σ cashflow_i / (1+r)^(days_i/365) = 0
//
// where days_i counts from the first cashflow's date. It starts Newton's
// method at 0.1 and retries once at 0.2 on divergence; if neither guess
// converges the error wraps ErrNoConvergence and the yield is undefined for
// this cashflow shape.
func XIRR(dates []date.Date, cashflows []float64) (float64, error) {
	if len(dates) != len(cashflows) {
		return 0, fmt.Errorf("xirr: %d dates for %d cashflows", len(dates), len(cashflows))
	}
	if len(dates) == 0 {
		return 0, fmt.Errorf("xirr: empty cashflow schedule")
	}

	days := make([]float64, len(dates))
	for i, d := range dates {
		days[i] = float64(d.Sub(dates[0]))
	}

	terms := make([]float64, len(cashflows))
	npv := func(rate float64) float64 {
		for i, cf := range cashflows {
			terms[i] = cf / math.Pow(1+rate, days[i]/365.0)
		}
		return floats.Sum(terms)
	}
	dnpv := func(rate float64) float64 {
		for i, cf := range cashflows {
			terms[i] = -(days[i] / 365.0) * cf / math.Pow(1+rate, days[i]/365.0+1)
		}
		return floats.Sum(terms)
	}

	r, err := newton(npv, dnpv, 0.1)
	if err != nil {
		// one documented retry with an alternate starting point
		r, err = newton(npv, dnpv, 0.2)
	}
	if err != nil {
		return 0, fmt.Errorf("xirr: %w", err)
	}
	return r, nil
}

// ForwardXIRR answers "if I bought the remaining future cashflows today at
// currentValue, what would my return be going forward": it keeps only the
// cashflows strictly after asOf, prepends a synthetic -currentValue entry
// dated asOf, and solves the same equation as XIRR.
//
// It returns NaN (and no error) when no future cashflows exist.
func ForwardXIRR(dates []date.Date, cashflows []float64, currentValue float64, asOf date.Date) (float64, error) {
	if len(dates) != len(cashflows) {
		return 0, fmt.Errorf("forward xirr: %d dates for %d cashflows", len(dates), len(cashflows))
	}

	futureDates := []date.Date{asOf}
	futureFlows := []float64{-currentValue}
	for i, d := range dates {
		if d.After(asOf) {
			futureDates = append(futureDates, d)
			futureFlows = append(futureFlows, cashflows[i])
		}
	}
	if len(futureDates) == 1 {
		return math.NaN(), nil
	}
	return XIRR(futureDates, futureFlows)
}
