package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/valuation"
	"github.com/google/subcommands"
)

// targetPriceCmd holds the flags for the 'target-price' subcommand.
type targetPriceCmd struct {
	security  string
	date      string
	target    float64
	floor     float64
	ceiling   float64
	tolerance float64
}

func (*targetPriceCmd) Name() string { return "target-price" }
func (*targetPriceCmd) Synopsis() string {
	return "highest price at which a bond still meets the target yield"
}
func (*targetPriceCmd) Usage() string {
	return `pvs target-price -s <security> [-target <rate>] [-d <date>]

  Searches for the highest clean price at which buying the bond today still
  returns the target XIRR, by probing its projected cashflow schedule.
`
}

func (c *targetPriceCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.security, "s", "", "Security symbol")
	f.StringVar(&c.date, "d", "", "Purchase date, defaults to today")
	f.Float64Var(&c.target, "target", valuation.DefaultTargetXIRR, "Target XIRR, as a fraction")
	f.Float64Var(&c.floor, "floor", valuation.DefaultPriceFloor, "Lowest price probed")
	f.Float64Var(&c.ceiling, "ceiling", valuation.DefaultPriceCeiling, "Highest price probed")
	f.Float64Var(&c.tolerance, "tolerance", valuation.DefaultPriceTolerance, "Search stops below this bracket width")
}

func (c *targetPriceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.security == "" {
		fmt.Fprintln(os.Stderr, "Error: -s <security> is required")
		return subcommands.ExitUsageError
	}
	asOf, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
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

	schedule, err := valuation.ProjectedSchedule(valuation.NSE(), *sec, asOf, valuation.SettlementLagDays)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error projecting cashflows: %v\n", err)
		return subcommands.ExitFailure
	}

	price, ok := valuation.PriceForTargetXIRR(schedule.Dates(), schedule.Cashflows(),
		c.target, c.floor, c.ceiling, c.tolerance)
	if !ok {
		fmt.Printf("%s: no price in [%g, %g] returns %.2f%%\n", c.security, c.floor, c.ceiling, c.target*100)
		return subcommands.ExitSuccess
	}
	fmt.Printf("%s: buy at or below %.2f to return %.2f%%\n", c.security, price, c.target*100)
	return subcommands.ExitSuccess
}
