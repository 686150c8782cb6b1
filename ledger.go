package coinfolio

import (
	"fmt"
	"iter"
	"sort"
)

// Ledger is the authoritative, append-mostly log of buy/sell transactions.
//
// In a Ledger transactions are always in chronological order; same-day
// transactions keep their insertion order.
type Ledger struct {
	transactions []Transaction
	byID         map[string]int // index into transactions
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		transactions: make([]Transaction, 0),
		byID:         make(map[string]int),
	}
}

// Len returns the number of transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Add validates the transaction and appends it to the ledger, maintaining
// the chronological order.
func (l *Ledger) Add(tx Transaction) (Transaction, error) {
	tx, err := tx.Validate()
	if err != nil {
		return tx, fmt.Errorf("invalid %s transaction on %v: %w", tx.Side, tx.Date, err)
	}
	if _, exists := l.byID[tx.ID]; exists {
		return tx, fmt.Errorf("duplicate transaction id %q", tx.ID)
	}
	l.transactions = append(l.transactions, tx)
	l.stableSort()
	return tx, nil
}

// Get returns the transaction with the given id.
func (l *Ledger) Get(id string) (Transaction, error) {
	i, ok := l.byID[id]
	if !ok {
		return Transaction{}, fmt.Errorf("transaction %q: %w", id, ErrNotFound)
	}
	return l.transactions[i], nil
}

// Update replaces the transaction with the given id. Only manual
// transactions can be updated; the replacement keeps the original id and
// origin so an edit cannot launder a synced entry into a manual one.
// The ledger is left unchanged on error.
func (l *Ledger) Update(id string, tx Transaction) (Transaction, error) {
	i, ok := l.byID[id]
	if !ok {
		return Transaction{}, fmt.Errorf("transaction %q: %w", id, ErrNotFound)
	}
	old := l.transactions[i]
	if !old.IsManual() {
		return Transaction{}, fmt.Errorf("transaction %q: %w", id, ErrInvalidOperation)
	}
	tx.ID = old.ID
	tx.Origin = old.Origin
	tx, err := tx.Validate()
	if err != nil {
		return tx, fmt.Errorf("invalid %s transaction on %v: %w", tx.Side, tx.Date, err)
	}
	l.transactions[i] = tx
	l.stableSort()
	return tx, nil
}

// Delete removes the transaction with the given id. Only manual
// transactions can be deleted. The ledger is left unchanged on error.
func (l *Ledger) Delete(id string) error {
	i, ok := l.byID[id]
	if !ok {
		return fmt.Errorf("transaction %q: %w", id, ErrNotFound)
	}
	if !l.transactions[i].IsManual() {
		return fmt.Errorf("transaction %q: %w", id, ErrInvalidOperation)
	}
	l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
	l.reindex()
	return nil
}

// ReplaceSynced swaps all exchange-synced transactions for the given set in
// one step, leaving manual entries untouched. It is used by the exchange
// sync tick, whose balances are a full statement, not a delta.
func (l *Ledger) ReplaceSynced(txs []Transaction) error {
	kept := make([]Transaction, 0, len(l.transactions)+len(txs))
	for _, tx := range l.transactions {
		if tx.IsManual() {
			kept = append(kept, tx)
		}
	}
	for _, tx := range txs {
		tx.Origin = Synced
		tx, err := tx.Validate()
		if err != nil {
			return fmt.Errorf("invalid synced transaction for %q: %w", tx.Symbol, err)
		}
		kept = append(kept, tx)
	}
	l.transactions = kept
	l.stableSort()
	return nil
}

// Transactions returns an iterator that yields each transaction in
// chronological order. With no filter every transaction is yielded;
// otherwise a transaction must match all filters.
func (l *Ledger) Transactions(filters ...func(Transaction) bool) iter.Seq2[int, Transaction] {
	return func(yield func(int, Transaction) bool) {
		for i, tx := range l.transactions {
			accept := true
			for _, filter := range filters {
				if !filter(tx) {
					accept = false
					break
				}
			}
			if !accept {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// All returns a copy of the transaction log in chronological order.
func (l *Ledger) All() []Transaction {
	out := make([]Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// OldestTransactionDate returns the date of the earliest transaction, or
// the zero date for an empty ledger.
func (l *Ledger) OldestTransactionDate() Date {
	if len(l.transactions) == 0 {
		return Date{}
	}
	return l.transactions[0].Date
}

// stableSort sorts the ledger by transaction date. The sort is stable,
// meaning transactions on the same day maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
	l.reindex()
}

func (l *Ledger) reindex() {
	l.byID = make(map[string]int, len(l.transactions))
	for i, tx := range l.transactions {
		l.byID[tx.ID] = i
	}
}
