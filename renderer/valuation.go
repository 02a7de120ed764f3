package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/valuation"
)

// ValuationMarkdown renders the full portfolio valuation report.
func ValuationMarkdown(r *valuation.ValuationReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Portfolio Valuation on %s\n\n", r.Date)

	fmt.Fprint(&b, "## Securities\n\n")
	fmt.Fprintln(&b, "| Security | Type | Quantity | Investment | XIRR | Forward XIRR | YTM | Maturity |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|---:|---:|:---|")
	for _, v := range r.Securities {
		maturity := ""
		if !v.Maturity.IsZero() {
			maturity = v.Maturity.String()
		}
		fmt.Fprintf(&b, "| %s | %s | %g | %.2f | %s | %s | %s | %s |\n",
			v.Symbol, v.Type, v.Quantity, v.Investment,
			percent(v.XIRR), percent(v.ForwardXIRR), rate(v.YTM), maturity)
	}
	fmt.Fprintf(&b, "| **Total** | | | **%.2f** | **%s** | | | |\n",
		r.Investment, percent(r.XIRR))

	if len(r.Yearly) > 0 {
		fmt.Fprint(&b, "\n## Yearly Cashflows\n\n")
		fmt.Fprintln(&b, "| Year | Cashflow |")
		fmt.Fprintln(&b, "|:---|---:|")
		for _, y := range r.Yearly {
			fmt.Fprintf(&b, "| %d | %.2f |\n", y.Year, y.Total)
		}
	}

	return b.String()
}
