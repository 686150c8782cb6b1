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

type historyCmd struct {
	days int
	view string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display the portfolio value over time" }
func (*historyCmd) Usage() string {
	return `cfl history [-days <n>] [-view <combined|manual|synced>]

  Replays the ledger day by day and displays the portfolio value at each
  date, priced at the last transaction price known on that day.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.days, "days", 30, "Number of days to display.")
	f.StringVar(&c.view, "view", "combined", "Portfolio view to replay (combined, manual, synced).")
}

func (c *historyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, status := parseView(c.view)
	if status != subcommands.ExitSuccess {
		return status
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	txs := view.Filter(ledger.All())

	start := coinfolio.Today().Add(1 - c.days)
	if oldest := ledger.OldestTransactionDate(); !oldest.IsZero() && start.Before(oldest) {
		start = oldest
	}

	var points []coinfolio.ValuePoint
	for day := start; !day.After(coinfolio.Today()); day = day.Add(1) {
		var upTo []coinfolio.Transaction
		for _, tx := range txs {
			if !tx.Date.After(day) {
				upTo = append(upTo, tx)
			}
		}
		holdings, _ := coinfolio.Reconcile(upTo)
		points = append(points, coinfolio.ValuePoint{Date: day, Value: holdings.TotalValue()})
	}

	printMarkdown(renderer.HistoryMarkdown(points))

	return subcommands.ExitSuccess
}
