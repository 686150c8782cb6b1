package coinfolio

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// txRecord is a specialized struct for decoding a JSONL transaction line.
// The price is persisted as two flat fields (amount and currency).
type txRecord struct {
	ID       string          `json:"id"`
	Side     Side            `json:"side"`
	Origin   Origin          `json:"origin"`
	Date     Date            `json:"date"`
	Symbol   string          `json:"symbol"`
	Name     string          `json:"name,omitempty"`
	Quantity Quantity        `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
	Memo     string          `json:"memo,omitempty"`
}

func (r txRecord) transaction() Transaction {
	return Transaction{
		ID:       r.ID,
		Side:     r.Side,
		Origin:   r.Origin,
		Date:     r.Date,
		Symbol:   r.Symbol,
		Name:     r.Name,
		Quantity: r.Quantity,
		Price:    M(r.Price, r.Currency),
		Memo:     r.Memo,
	}
}

// DecodeLedger reads transactions from a stream of JSONL data, decodes each
// line, and returns a sorted Ledger.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}

		var record txRecord
		if err := json.Unmarshal(lineBytes, &record); err != nil {
			return nil, fmt.Errorf("could not decode transaction line %q: %w", string(lineBytes), err)
		}

		if _, err := ledger.Add(record.transaction()); err != nil {
			return nil, err
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}

	return ledger, nil
}

// EncodeTransaction marshals a single transaction to JSON and writes it to
// the writer, followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	decimal.MarshalJSONWithoutQuotes = true
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("failed to marshal transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeLedger persists the ledger to an io.Writer in JSONL format, one
// transaction per line in chronological order with a canonical key order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	decimal.MarshalJSONWithoutQuotes = true
	for _, tx := range ledger.transactions {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
