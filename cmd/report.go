package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/etnz/valuation"
	"github.com/etnz/valuation/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	date    string
	workers int
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "value the whole portfolio" }
func (*reportCmd) Usage() string {
	return `pvs report [-d <date>] [-workers <n>]

  Values every security in the ledger: schedule-based XIRR, and when a
  market snapshot is given (-snapshot-file), forward XIRR and yield to
  maturity at the snapshot price.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Valuation date, defaults to today")
	f.IntVar(&c.workers, "workers", runtime.NumCPU(), "Securities valued concurrently")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asOf, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	db, err := DecodeSecurities()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading securities: %v\n", err)
		return subcommands.ExitFailure
	}
	prices, err := DecodePrices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading market snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	report, err := valuation.NewValuation(ledger, db, valuation.NSE(), prices, asOf, c.workers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building report: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ValuationMarkdown(report))
	return subcommands.ExitSuccess
}
