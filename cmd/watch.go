package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/renderer"
	"github.com/google/subcommands"
)

// watchConfig holds the environment configuration of the watch daemon.
type watchConfig struct {
	QuoteInterval time.Duration `env:"COINFOLIO_QUOTE_INTERVAL" envDefault:"60s"`
	SyncInterval  time.Duration `env:"COINFOLIO_SYNC_INTERVAL" envDefault:"60s"`
}

type watchCmd struct {
	view string
	sync bool
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "watch the portfolio live" }
func (*watchCmd) Usage() string {
	return `cfl watch [-view <combined|manual|synced>] [-sync]

  Runs the portfolio as a foreground daemon: quotes refresh on a timer,
  exchange balances sync on another (with -sync), and the holdings are
  reprinted on every change. Intervals come from COINFOLIO_QUOTE_INTERVAL
  and COINFOLIO_SYNC_INTERVAL. Stop with Ctrl-C.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.view, "view", "combined", "Portfolio view to watch (combined, manual, synced).")
	f.BoolVar(&c.sync, "sync", false, "also sync exchange balances periodically")
}

func (c *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	view, status := parseView(c.view)
	if status != subcommands.ExitSuccess {
		return status
	}

	var cfg watchConfig
	if err := env.Parse(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading configuration: %v\n", err)
		return subcommands.ExitFailure
	}

	var syncer coinfolio.ExchangeSyncer
	if c.sync {
		syncer = coinfolio.NewThreeCommas()
	}

	tracker := coinfolio.NewTracker(*ledgerFile, coinfolio.NewCoinGecko(), syncer, view)
	tracker.QuoteInterval = cfg.QuoteInterval
	tracker.SyncInterval = cfg.SyncInterval

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	snapshots, cancel := tracker.Subscribe()
	defer cancel()
	go func() {
		for holdings := range snapshots {
			printMarkdown(renderer.HoldingMarkdown(coinfolio.Today(), holdings, tracker.Inconsistencies()))
		}
	}()

	// Prime the display and the prices before the first tick.
	if err := tracker.RefreshQuotes(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not fetch prices: %v\n", err)
	}

	fmt.Fprintf(os.Stderr, "Watching %s (quotes every %s). Ctrl-C to stop.\n", *ledgerFile, cfg.QuoteInterval)
	if err := tracker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
