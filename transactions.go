package coinfolio

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Side is the direction of a trade.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// ParseSide parses a string into a Side.
func ParseSide(s string) (Side, error) {
	switch strings.ToLower(s) {
	case "buy":
		return Buy, nil
	case "sell":
		return Sell, nil
	default:
		return "", fmt.Errorf("unknown trade side: %q", s)
	}
}

// Origin records where a transaction came from. Only manual transactions
// may be edited or deleted; synced ones are owned by the exchange.
type Origin string

const (
	Manual Origin = "manual"
	Synced Origin = "synced"
)

// Transaction is a single buy or sell event in the ledger. It is immutable
// once recorded; edits go through Ledger.Update by id.
type Transaction struct {
	ID       string   // opaque unique token
	Side     Side     // buy or sell
	Origin   Origin   // manual entry or exchange sync
	Symbol   string   // asset symbol, uppercased for matching
	Name     string   // optional display name ("Bitcoin")
	Quantity Quantity // number of units traded
	Price    Money    // price per unit at trade time
	Date     Date     // trade date
	Memo     string   // optional rationale
}

// NewBuy creates a manual buy transaction.
func NewBuy(day Date, symbol string, quantity Quantity, price Money) Transaction {
	return newTransaction(day, Buy, Manual, symbol, quantity, price)
}

// NewSell creates a manual sell transaction.
func NewSell(day Date, symbol string, quantity Quantity, price Money) Transaction {
	return newTransaction(day, Sell, Manual, symbol, quantity, price)
}

// NewSyncedBuy creates an exchange-synced buy transaction. The exchange
// reports balances, not trades, so the price carries the exchange's cost
// information when available and zero otherwise.
func NewSyncedBuy(day Date, symbol string, quantity Quantity, price Money) Transaction {
	return newTransaction(day, Buy, Synced, symbol, quantity, price)
}

func newTransaction(day Date, side Side, origin Origin, symbol string, quantity Quantity, price Money) Transaction {
	return Transaction{
		ID:       uuid.NewString(),
		Side:     side,
		Origin:   origin,
		Symbol:   strings.ToUpper(symbol),
		Quantity: quantity,
		Price:    price,
		Date:     day,
	}
}

// IsManual reports whether the transaction was entered by hand.
func (t Transaction) IsManual() bool { return t.Origin == Manual }

// Equal reports whether two transactions carry the same recorded facts.
// The insertion sequence is not part of the comparison.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Side == o.Side &&
		t.Origin == o.Origin &&
		t.Symbol == o.Symbol &&
		t.Name == o.Name &&
		t.Quantity.Equal(o.Quantity) &&
		t.Price.Equal(o.Price) &&
		t.Date == o.Date &&
		t.Memo == o.Memo
}

// Validate checks the transaction for correctness and applies quick fixes
// where applicable (missing id, lowercase symbol, zero date). It returns the
// validated (and potentially modified) transaction or an error.
func (t Transaction) Validate() (Transaction, error) {
	if t.Symbol == "" {
		return t, errors.New("transaction symbol is missing")
	}
	t.Symbol = strings.ToUpper(t.Symbol)
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Date.IsZero() {
		t.Date = Today()
	}
	switch t.Side {
	case Buy, Sell:
	default:
		return t, fmt.Errorf("unknown trade side: %q", t.Side)
	}
	switch t.Origin {
	case Manual, Synced:
	case "":
		t.Origin = Manual
	default:
		return t, fmt.Errorf("unknown transaction origin: %q", t.Origin)
	}
	if t.Quantity.IsNegative() {
		return t, fmt.Errorf("transaction quantity must not be negative, got %s", t.Quantity)
	}
	if t.Price.IsNegative() {
		return t, fmt.Errorf("transaction price must not be negative, got %s", t.Price)
	}
	return t, nil
}

// MarshalJSON implements the json.Marshaler interface for Transaction,
// with a stable key order for canonical JSONL output.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("side", t.Side)
	w.Append("origin", t.Origin)
	w.Append("date", t.Date)
	w.Append("symbol", t.Symbol)
	w.Optional("name", t.Name)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price.value)
	w.Append("currency", t.Price.Currency())
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// BySymbol returns a predicate that filters transactions by asset symbol.
func BySymbol(symbol string) func(Transaction) bool {
	symbol = strings.ToUpper(symbol)
	return func(tx Transaction) bool { return tx.Symbol == symbol }
}

// ByOrigin returns a predicate that filters transactions by origin.
func ByOrigin(origin Origin) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Origin == origin }
}

// BySide returns a predicate that filters transactions by trade side.
func BySide(side Side) func(Transaction) bool {
	return func(tx Transaction) bool { return tx.Side == side }
}
