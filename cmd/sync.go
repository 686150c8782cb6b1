package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/coinfolio"
	"github.com/google/subcommands"
)

type syncCmd struct{}

func (*syncCmd) Name() string     { return "sync" }
func (*syncCmd) Synopsis() string { return "mirror exchange balances into the ledger" }
func (*syncCmd) Usage() string {
	return `cfl sync

  Fetches the balances of all 3Commas-connected exchange accounts and
  replaces the synced entries of the ledger with them. Manual entries are
  never touched. Requires THREECOMMAS_API_KEY and THREECOMMAS_API_SECRET.
`
}

func (c *syncCmd) SetFlags(f *flag.FlagSet) {}

func (c *syncCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	txs, err := coinfolio.NewThreeCommas().SyncTransactions(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error syncing exchange balances: %v\n", err)
		return subcommands.ExitFailure
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := ledger.ReplaceSynced(txs); err != nil {
		fmt.Fprintf(os.Stderr, "Error applying synced balances: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Synced %d exchange balances into %s\n", len(txs), *ledgerFile)
	return subcommands.ExitSuccess
}
