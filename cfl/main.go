package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/coinfolio/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion support, a no-op outside of completion mode.
	completion().Complete("cfl")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	commander.Register(commander.CommandsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completion() *complete.Command {
	views := predict.Set{"combined", "manual", "synced"}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"ledger-file": predict.Files("*.jsonl"),
		},
		Sub: map[string]*complete.Command{
			"buy":     {Flags: map[string]complete.Predictor{"s": predict.Nothing, "q": predict.Nothing, "p": predict.Nothing}},
			"sell":    {Flags: map[string]complete.Predictor{"s": predict.Nothing, "q": predict.Nothing, "p": predict.Nothing}},
			"tx":      {Flags: map[string]complete.Predictor{"o": predict.Set{"manual", "synced"}}},
			"edit":    {Flags: map[string]complete.Predictor{"id": predict.Nothing}},
			"delete":  {Flags: map[string]complete.Predictor{"id": predict.Nothing}},
			"fmt":     {},
			"holding": {Flags: map[string]complete.Predictor{"view": views}},
			"history": {Flags: map[string]complete.Predictor{"view": views}},
			"news":    {},
			"insight": {Flags: map[string]complete.Predictor{"view": views}},
			"sync":    {},
			"watch":   {Flags: map[string]complete.Predictor{"view": views}},
			"topic":   {Args: predict.Set{"ledger", "cost-basis", "sync", "watch", "views", "*"}},
		},
	}
}
