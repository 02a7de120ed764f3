package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/valuation"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// sellCmd holds the flags for the 'sell' subcommand.
type sellCmd struct {
	date     string
	account  string
	security string
	quantity string
	price    string
	currency string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a disposal in the ledger" }
func (*sellCmd) Usage() string {
	return `pvs sell -s <security> -q <quantity> -p <price> [-d <date>] [-a <account>] [-c <currency>]

  Appends a sell transaction to the ledger. Whether the position covers the
  sale is checked at report time, when lots are replayed.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Trade date, defaults to today")
	f.StringVar(&c.account, "a", "default", "Account holding the position")
	f.StringVar(&c.security, "s", "", "Security symbol")
	f.StringVar(&c.quantity, "q", "", "Quantity sold")
	f.StringVar(&c.price, "p", "", "Price per unit")
	f.StringVar(&c.currency, "c", "INR", "Settlement currency")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	quantity, err := decimal.NewFromString(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity %q: %v\n", c.quantity, err)
		return subcommands.ExitUsageError
	}
	price, err := decimal.NewFromString(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price %q: %v\n", c.price, err)
		return subcommands.ExitUsageError
	}
	tx := valuation.NewSell(day, c.account, c.security, valuation.Q(quantity), valuation.M(price, c.currency))
	if err := tx.Validate(nil); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid transaction: %v\n", err)
		return subcommands.ExitUsageError
	}
	return EncodeTransaction(tx)
}
