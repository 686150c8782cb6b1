package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/renderer"
	"github.com/google/subcommands"
)

// holdingCmd holds the flags for the 'holding' subcommand.
type holdingCmd struct {
	view   string
	update bool
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the current holdings" }
func (*holdingCmd) Usage() string {
	return `cfl holding [-view <combined|manual|synced>] [-u]

  Replays the ledger and displays the resulting holdings: quantity, cost
  basis, value and unrealized gain per asset, plus the allocation.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.view, "view", "combined", "Portfolio view to replay (combined, manual, synced).")
	f.BoolVar(&c.update, "u", false, "fetch latest prices before displaying the report")
}

func (c *holdingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, status := parseView(c.view)
	if status != subcommands.ExitSuccess {
		return status
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	holdings, faults := coinfolio.Reconcile(view.Filter(ledger.All()))

	if c.update && len(holdings) > 0 {
		quotes, err := coinfolio.NewCoinGecko().Quotes(ctx, holdings.Symbols())
		if err != nil {
			// keep the ledger prices rather than fail the report
			fmt.Fprintf(os.Stderr, "Warning: could not fetch prices: %v\n", err)
		} else {
			holdings = coinfolio.Annotate(holdings, quotes)
		}
	}

	printMarkdown(renderer.HoldingMarkdown(coinfolio.Today(), holdings, faults))

	return subcommands.ExitSuccess
}
