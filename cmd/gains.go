package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/valuation"
	"github.com/etnz/valuation/renderer"
	"github.com/google/subcommands"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	method string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "realized capital gains of the ledger" }
func (*gainsCmd) Usage() string {
	return `pvs gains [-method <method>]

  Replays the ledger into purchase lots and reports every disposal with its
  matched lot and realized gain.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.method, "method", "fifo", "Lot matching method (fifo, lifo, hifo)")
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	policy, err := valuation.ParseMatchingPolicy(c.method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing method: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	_, disposals, err := valuation.Replay(ledger, policy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.GainsMarkdown(disposals, policy))
	return subcommands.ExitSuccess
}
