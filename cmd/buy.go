package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/coinfolio"
	"github.com/etnz/coinfolio/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// tradeFlags holds the flags shared by the buy and sell subcommands.
type tradeFlags struct {
	date     string
	symbol   string
	name     string
	quantity string
	price    string
	currency string
	memo     string
}

func (t *tradeFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&t.date, "d", coinfolio.Today().String(), "Date of the transaction.")
	f.StringVar(&t.symbol, "s", "", "Asset symbol (e.g. BTC).")
	f.StringVar(&t.name, "n", "", "Asset display name (e.g. Bitcoin).")
	f.StringVar(&t.quantity, "q", "", "Quantity of the asset.")
	f.StringVar(&t.price, "p", "", "Price per unit.")
	f.StringVar(&t.currency, "c", "USD", "Currency of the price.")
	f.StringVar(&t.memo, "memo", "", "Free-form note attached to the transaction.")
}

// transaction builds a manual transaction from the flags.
// Quantity and price are parsed as decimals so the CLI never loses
// precision on the way to the ledger.
func (t *tradeFlags) transaction(side coinfolio.Side) (coinfolio.Transaction, error) {
	day, err := coinfolio.ParseDate(t.date)
	if err != nil {
		return coinfolio.Transaction{}, fmt.Errorf("invalid date: %w", err)
	}
	quantity, err := decimal.NewFromString(t.quantity)
	if err != nil {
		return coinfolio.Transaction{}, fmt.Errorf("invalid quantity %q: %w", t.quantity, err)
	}
	price, err := decimal.NewFromString(t.price)
	if err != nil {
		return coinfolio.Transaction{}, fmt.Errorf("invalid price %q: %w", t.price, err)
	}

	var tx coinfolio.Transaction
	switch side {
	case coinfolio.Sell:
		tx = coinfolio.NewSell(day, t.symbol, coinfolio.Q(quantity), coinfolio.M(price, t.currency))
	default:
		tx = coinfolio.NewBuy(day, t.symbol, coinfolio.Q(quantity), coinfolio.M(price, t.currency))
	}
	tx.Name = t.name
	tx.Memo = t.memo
	return tx.Validate()
}

// record appends the transaction to the ledger and saves it.
func record(tx coinfolio.Transaction) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	tx, err = ledger.Add(tx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording transaction: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("%s (id %s)\n", renderer.Transaction(tx), tx.ID)
	return subcommands.ExitSuccess
}

type buyCmd struct {
	tradeFlags
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a buy in the ledger" }
func (*buyCmd) Usage() string {
	return `cfl buy -s <symbol> -q <quantity> -p <price> [-d <date>] [-n <name>] [-c <currency>] [-memo <note>]

  Records a manual buy transaction in the ledger.

Usage Examples:
$ cfl buy -s BTC -q 0.5 -p 42000
`
}

func (c *buyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, err := c.transaction(coinfolio.Buy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return record(tx)
}

type sellCmd struct {
	tradeFlags
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sell in the ledger" }
func (*sellCmd) Usage() string {
	return `cfl sell -s <symbol> -q <quantity> -p <price> [-d <date>] [-c <currency>] [-memo <note>]

  Records a manual sell transaction in the ledger.

Usage Examples:
$ cfl sell -s BTC -q 0.5 -p 65000
`
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	tx, err := c.transaction(coinfolio.Sell)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	return record(tx)
}
