// Command pvs values a household portfolio of Indian government securities.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/valuation/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion wires shell completion; it exits by itself when invoked by the
// shell in completion mode.
func completion() {
	tx := &complete.Command{
		Flags: map[string]complete.Predictor{
			"d": predict.Nothing,
			"a": predict.Nothing,
			"s": predict.Nothing,
			"q": predict.Nothing,
			"p": predict.Nothing,
			"c": predict.Set{"INR"},
		},
	}
	pvs := &complete.Command{
		Flags: map[string]complete.Predictor{
			"ledger-file":     predict.Files("*.jsonl"),
			"securities-file": predict.Files("*.csv"),
			"snapshot-file":   predict.Files("*.json"),
		},
		Sub: map[string]*complete.Command{
			"buy":          tx,
			"sell":         tx,
			"quote":        {Flags: map[string]complete.Predictor{"s": predict.Nothing, "o": predict.Files("*.json")}},
			"schedule":     {Flags: map[string]complete.Predictor{"s": predict.Nothing}},
			"gains":        {Flags: map[string]complete.Predictor{"method": predict.Set{"fifo", "lifo", "hifo"}}},
			"target-price": {Flags: map[string]complete.Predictor{"s": predict.Nothing, "d": predict.Nothing, "target": predict.Nothing}},
			"report":       {Flags: map[string]complete.Predictor{"d": predict.Nothing, "workers": predict.Nothing}},
			"topic":        {Args: predict.Set{"readme", "schedule", "lots", "yields"}},
		},
	}
	pvs.Complete("pvs")
}
