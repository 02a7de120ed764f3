package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/valuation"
)

// ScheduleMarkdown renders the dated cashflow schedule of one security.
func ScheduleMarkdown(sec valuation.Security, s valuation.Schedule) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Cashflow Schedule for %s\n\n", sec.Symbol)
	if sec.Type.IsBond() {
		fmt.Fprintf(&b, "%s, face value %g, maturing %s", sec.Type, sec.FaceValue, sec.Maturity)
		if sec.CouponRate > 0 {
			fmt.Fprintf(&b, ", %g%% coupon paid %d times a year", sec.CouponRate, sec.CouponFrequency)
		}
		fmt.Fprint(&b, "\n\n")
	}

	fmt.Fprintln(&b, "| Date | Quantity | Coupon | Principal | Transaction | Total |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|")
	for _, e := range s.Entries() {
		marker := ""
		if e.IsMaturity() {
			marker = " (maturity)"
		}
		fmt.Fprintf(&b, "| %s%s | %g | %s | %s | %s | %.2f |\n",
			e.Date, marker, e.Quantity,
			amount(e.Coupon), amount(e.Principal), amount(e.Transaction), e.Total)
	}

	var total float64
	for _, e := range s.Entries() {
		total += e.Total
	}
	fmt.Fprintf(&b, "| **Total** | | | | | **%.2f** |\n", total)

	return b.String()
}
