// Package renderer turns valuation reports into markdown documents.
//
// Rendering is kept apart from the engine: the engine computes, this
// package formats, and the cmd layer decides where the markdown goes
// (terminal, file, or pipe).
package renderer

import (
	"fmt"
	"math"
)

// percent renders a fraction as a percentage, or n/a when undefined.
func percent(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", v*100)
}

// rate renders an already-percent rate, or n/a when undefined.
func rate(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", v)
}

// amount renders a cashflow amount, blank when zero so tables stay sparse.
func amount(v float64) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%.2f", v)
}
