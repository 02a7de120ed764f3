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

// buyCmd holds the flags for the 'buy' subcommand.
type buyCmd struct {
	date     string
	account  string
	security string
	quantity string
	price    string
	currency string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a purchase in the ledger" }
func (*buyCmd) Usage() string {
	return `pvs buy -s <security> -q <quantity> -p <price> [-d <date>] [-a <account>] [-c <currency>]

  Appends a buy transaction to the ledger. Price is per unit, per 100 of
  face value for debt instruments.
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Trade date, defaults to today")
	f.StringVar(&c.account, "a", "default", "Account holding the position")
	f.StringVar(&c.security, "s", "", "Security symbol")
	f.StringVar(&c.quantity, "q", "", "Quantity bought")
	f.StringVar(&c.price, "p", "", "Price per unit")
	f.StringVar(&c.currency, "c", "INR", "Settlement currency")
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, status := c.transaction()
	if status != subcommands.ExitSuccess {
		return status
	}
	return EncodeTransaction(tx)
}

func (c *buyCmd) transaction() (valuation.Transaction, subcommands.ExitStatus) {
	day, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return nil, subcommands.ExitUsageError
	}
	quantity, err := decimal.NewFromString(c.quantity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing quantity %q: %v\n", c.quantity, err)
		return nil, subcommands.ExitUsageError
	}
	price, err := decimal.NewFromString(c.price)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing price %q: %v\n", c.price, err)
		return nil, subcommands.ExitUsageError
	}
	tx := valuation.NewBuy(day, c.account, c.security, valuation.Q(quantity), valuation.M(price, c.currency))
	if err := tx.Validate(nil); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid transaction: %v\n", err)
		return nil, subcommands.ExitUsageError
	}
	return tx, subcommands.ExitSuccess
}
