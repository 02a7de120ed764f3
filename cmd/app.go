// Package cmd implements the CLI application to value a household bond
// portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/valuation"
	"github.com/etnz/valuation/date"
	"github.com/etnz/valuation/nse"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package calls Register() to declare the subcommands, and Execute()
// on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")

	c.Register(&quoteCmd{}, "market data")

	c.Register(&scheduleCmd{}, "reports")
	c.Register(&gainsCmd{}, "reports")
	c.Register(&targetPriceCmd{}, "reports")
	c.Register(&reportCmd{}, "reports")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the ledger file containing transactions (JSONL format)")
var securitiesFile = flag.String("securities-file", "securities.csv", "Path to the securities reference table (CSV)")
var snapshotFile = flag.String("snapshot-file", "", "Path to a saved market snapshot (JSON); empty means no market prices")

// DecodeLedger loads the app ledger file. A missing file is an empty ledger,
// not an error: the first buy creates it.
func DecodeLedger() (*valuation.Ledger, error) {
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		return valuation.NewLedger(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return valuation.DecodeLedger(f)
}

// DecodeSecurities loads the app securities reference table.
func DecodeSecurities() (*valuation.Securities, error) {
	f, err := os.Open(*securitiesFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return valuation.DecodeSecurities(f)
}

// DecodePrices loads the market snapshot if one was given.
func DecodePrices() (nse.Prices, error) {
	if *snapshotFile == "" {
		return nil, nil
	}
	f, err := os.Open(*snapshotFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return nse.DecodeSnapshot(f)
}

// EncodeTransaction appends a single transaction to the app ledger file.
func EncodeTransaction(tx valuation.Transaction) subcommands.ExitStatus {
	filename := *ledgerFile
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := valuation.EncodeTransaction(f, tx); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Successfully appended transaction to %s\n", filename)
	return subcommands.ExitSuccess
}

// parseDay parses a date flag, defaulting to today when empty.
func parseDay(s string) (date.Date, error) {
	if s == "" {
		return date.Today(), nil
	}
	return date.Parse(s)
}

// printMarkdown renders markdown for the terminal; on rendering trouble the
// raw markdown is still perfectly readable, so it is printed as-is.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
