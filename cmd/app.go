// Package cmd implements the CLI application to manage a crypto portfolio.
package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/etnz/coinfolio"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&buyCmd{}, "transactions")
	c.Register(&sellCmd{}, "transactions")
	c.Register(&txCmd{}, "transactions")
	c.Register(&editCmd{}, "transactions")
	c.Register(&deleteCmd{}, "transactions")
	c.Register(&fmtCmd{}, "transactions")

	c.Register(&holdingCmd{}, "reports")
	c.Register(&historyCmd{}, "reports")
	c.Register(&newsCmd{}, "reports")
	c.Register(&insightCmd{}, "reports")

	c.Register(&syncCmd{}, "exchange")
	c.Register(&watchCmd{}, "exchange")

	c.Register(&topicCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "transactions.jsonl", "Path to the ledger file containing transactions (JSONL format)")

// DecodeLedger loads the app default ledger file. A missing file is an
// empty ledger.
func DecodeLedger() (*coinfolio.Ledger, error) {
	return coinfolio.LoadLedger(*ledgerFile)
}

// SaveLedger writes the ledger back to the app default ledger file.
func SaveLedger(ledger *coinfolio.Ledger) error {
	return coinfolio.SaveLedger(*ledgerFile, ledger)
}

// parseView parses a -view flag value, exiting with a usage error message
// on failure.
func parseView(s string) (coinfolio.ViewMode, subcommands.ExitStatus) {
	view, err := coinfolio.ParseViewMode(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return view, subcommands.ExitUsageError
	}
	return view, subcommands.ExitSuccess
}
