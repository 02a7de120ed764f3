package renderer

import (
	"fmt"
	"sort"
	"strings"
)

// PricesMarkdown renders fetched market prices as a table, sorted by symbol.
func PricesMarkdown(prices map[string]float64) string {
	symbols := make([]string, 0, len(prices))
	for s := range prices {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)

	var b strings.Builder
	fmt.Fprint(&b, "# Market Prices\n\n")
	fmt.Fprintln(&b, "| Symbol | Last Price |")
	fmt.Fprintln(&b, "|:---|---:|")
	for _, s := range symbols {
		fmt.Fprintf(&b, "| %s | %.2f |\n", s, prices[s])
	}
	return b.String()
}
