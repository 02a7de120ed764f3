package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/valuation"
	"github.com/etnz/valuation/renderer"
	"github.com/google/subcommands"
)

// scheduleCmd holds the flags for the 'schedule' subcommand.
type scheduleCmd struct {
	security string
}

func (*scheduleCmd) Name() string     { return "schedule" }
func (*scheduleCmd) Synopsis() string { return "show the dated cashflow schedule of a security" }
func (*scheduleCmd) Usage() string {
	return `pvs schedule -s <security>

  Derives the full cashflow schedule of one security from the ledger:
  transaction cashflows on trade dates, quantity on settlement dates,
  coupons on market-shifted coupon dates, and the redemption at maturity.
`
}

func (c *scheduleCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.security, "s", "", "Security symbol")
}

func (c *scheduleCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.security == "" {
		fmt.Fprintln(os.Stderr, "Error: -s <security> is required")
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
	sec := db.Get(c.security)
	if sec == nil {
		fmt.Fprintf(os.Stderr, "Error: security %q not in the reference table\n", c.security)
		return subcommands.ExitFailure
	}

	txs := slices.Collect(ledger.SecurityTransactions(c.security))
	if len(txs) == 0 {
		fmt.Fprintf(os.Stderr, "Error: no transactions on %q\n", c.security)
		return subcommands.ExitFailure
	}

	schedule, err := valuation.BuildSchedule(valuation.NSE(), *sec, txs, valuation.SettlementLagDays)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building schedule: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ScheduleMarkdown(*sec, schedule))
	return subcommands.ExitSuccess
}
