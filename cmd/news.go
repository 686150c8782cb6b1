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

type newsCmd struct{}

func (*newsCmd) Name() string     { return "news" }
func (*newsCmd) Synopsis() string { return "show the latest crypto market news" }
func (*newsCmd) Usage() string {
	return `cfl news [category...]

  Shows the latest crypto market headlines, optionally filtered by
  category (e.g. BTC, ETH, Regulation).
`
}

func (c *newsCmd) SetFlags(f *flag.FlagSet) {}

func (c *newsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	articles, err := coinfolio.FetchNews(f.Args()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching news: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.NewsMarkdown(articles))
	return subcommands.ExitSuccess
}
