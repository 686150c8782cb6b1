package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type editCmd struct {
	id string
	tradeFlags
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit a manual transaction" }
func (*editCmd) Usage() string {
	return `cfl edit -id <id> [-d <date>] [-s <symbol>] [-q <quantity>] [-p <price>] [-c <currency>] [-memo <note>]

  Edits a manual transaction in place. Only the flags explicitly set are
  changed; the other fields keep their current value. Synced transactions
  cannot be edited: fix them on the exchange and sync again.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "ID of the transaction to edit.")
	c.tradeFlags.SetFlags(f)
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tx, err := ledger.Get(c.id)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	// Apply only the flags the user actually set.
	var flagErr error
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "d":
			day, err := coinfolio.ParseDate(c.date)
			if err != nil {
				flagErr = errors.Join(flagErr, fmt.Errorf("invalid date: %w", err))
				return
			}
			tx.Date = day
		case "s":
			tx.Symbol = c.symbol
		case "n":
			tx.Name = c.name
		case "q":
			quantity, err := decimal.NewFromString(c.quantity)
			if err != nil {
				flagErr = errors.Join(flagErr, fmt.Errorf("invalid quantity %q: %w", c.quantity, err))
				return
			}
			tx.Quantity = coinfolio.Q(quantity)
		case "p":
			price, err := decimal.NewFromString(c.price)
			if err != nil {
				flagErr = errors.Join(flagErr, fmt.Errorf("invalid price %q: %w", c.price, err))
				return
			}
			tx.Price = coinfolio.M(price, tx.Price.Currency())
		case "c":
			tx.Price = coinfolio.M(tx.Price.Amount(), c.currency)
		case "memo":
			tx.Memo = c.memo
		}
	})
	if flagErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", flagErr)
		return subcommands.ExitUsageError
	}

	tx, err = ledger.Update(c.id, tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated: %s (id %s)\n", renderer.Transaction(tx), tx.ID)
	return subcommands.ExitSuccess
}

type deleteCmd struct {
	id string
}

func (*deleteCmd) Name() string     { return "delete" }
func (*deleteCmd) Synopsis() string { return "delete a manual transaction" }
func (*deleteCmd) Usage() string {
	return `cfl delete -id <id>

  Deletes a manual transaction from the ledger. Synced transactions
  cannot be deleted.
`
}

func (c *deleteCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "ID of the transaction to delete.")
}

func (c *deleteCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.id == "" {
		fmt.Fprintln(os.Stderr, "Error: -id is required.")
		return subcommands.ExitUsageError
	}

	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := ledger.Delete(c.id); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Deleted transaction %s\n", c.id)
	return subcommands.ExitSuccess
}
