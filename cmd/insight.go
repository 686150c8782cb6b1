package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/agent"
	"github.com/google/subcommands"
	"google.golang.org/genai"
)

type insightCmd struct {
	view string
}

func (*insightCmd) Name() string     { return "insight" }
func (*insightCmd) Synopsis() string { return "AI reading of the portfolio against the news" }
func (*insightCmd) Usage() string {
	return `cfl insight [-view <combined|manual|synced>]

  Asks the Gemini-backed analyst for an insight on the portfolio: how it
  is positioned and what in today's news matters to the held assets.
  Requires GEMINI_API_KEY.
`
}

func (c *insightCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.view, "view", "combined", "Portfolio view the analyst reads (combined, manual, synced).")
}

func (c *insightCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, status := parseView(c.view)
	if status != subcommands.ExitSuccess {
		return status
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating Gemini client: %v\n", err)
		return subcommands.ExitFailure
	}

	analyst := agent.NewAnalyst(
		func() (coinfolio.Holdings, []coinfolio.Inconsistency) {
			return coinfolio.Reconcile(view.Filter(ledger.All()))
		},
		func(ctx context.Context) ([]coinfolio.Article, error) {
			return coinfolio.FetchNews()
		},
	)

	text, err := agent.Insight(ctx, client, analyst)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting insight: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(text)
	return subcommands.ExitSuccess
}
