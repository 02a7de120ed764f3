package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/valuation"
)

// GainsMarkdown renders the realized capital gains of a replay.
func GainsMarkdown(disposals []valuation.Disposal, policy valuation.MatchingPolicy) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Capital Gains Report\n\n")
	fmt.Fprintf(&b, "Method: %s\n\n", policy)

	if len(disposals) == 0 {
		fmt.Fprint(&b, "No disposals.\n")
		return b.String()
	}

	fmt.Fprintln(&b, "| Security | Sold | Lot of | Quantity | Cost / Unit | Price / Unit | Gain |")
	fmt.Fprintln(&b, "|:---|:---|:---|---:|---:|---:|---:|")
	var total valuation.Money
	for _, d := range disposals {
		gain := d.Gain()
		total = total.Add(gain)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			d.Security, d.Date, d.LotDate, d.Quantity, d.CostPerUnit, d.SalePrice, gain)
	}
	fmt.Fprintf(&b, "| **Total** | | | | | | **%s** |\n", total)

	return b.String()
}
