package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/valuation/nse"
	"github.com/etnz/valuation/renderer"
	"github.com/google/subcommands"
)

// quoteCmd holds the flags for the 'quote' subcommand.
type quoteCmd struct {
	symbol string
	out    string
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "fetch the latest prices from the exchange" }
func (*quoteCmd) Usage() string {
	return `pvs quote [-s <symbol>] [-o <snapshot.json>]

  Fetches the last traded price of every security in the ledger (or of one
  symbol with -s) from the NSE quote API. With -o the prices are saved as a
  snapshot that the other commands read through -snapshot-file.
`
}

func (c *quoteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.symbol, "s", "", "Quote a single symbol instead of the whole ledger")
	f.StringVar(&c.out, "o", "", "Save the prices as a market snapshot (JSON)")
}

func (c *quoteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbols := []string{c.symbol}
	if c.symbol == "" {
		ledger, err := DecodeLedger()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
			return subcommands.ExitFailure
		}
		symbols = symbols[:0]
		for s := range ledger.AllSecurities() {
			symbols = append(symbols, s)
		}
		if len(symbols) == 0 {
			fmt.Fprintln(os.Stderr, "The ledger holds no securities to quote")
			return subcommands.ExitFailure
		}
	}

	prices := make(nse.Prices, len(symbols))
	for _, s := range symbols {
		price, err := nse.Latest(s)
		if err != nil {
			// one misnamed symbol must not lose the other quotes
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		prices[s] = price
	}
	if len(prices) == 0 {
		fmt.Fprintln(os.Stderr, "No quotes could be fetched")
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.PricesMarkdown(prices))

	if c.out != "" {
		out, err := os.Create(c.out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating snapshot file %q: %v\n", c.out, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		if err := nse.EncodeSnapshot(out, prices); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing snapshot file %q: %v\n", c.out, err)
			return subcommands.ExitFailure
		}
		fmt.Printf("Saved %d quotes to %s\n", len(prices), c.out)
	}
	return subcommands.ExitSuccess
}
