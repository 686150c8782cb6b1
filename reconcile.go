package coinfolio

import (
	"fmt"
	"sort"
	"strings"
)

// ViewMode selects which transaction origins take part in a reconciliation.
type ViewMode int

const (
	// Combined merges manual and exchange-synced transactions.
	Combined ViewMode = iota
	// ManualOnly keeps user-entered transactions.
	ManualOnly
	// SyncedOnly keeps exchange-synced transactions.
	SyncedOnly
)

func (m ViewMode) String() string {
	switch m {
	case Combined:
		return "combined"
	case ManualOnly:
		return "manual"
	case SyncedOnly:
		return "synced"
	default:
		return "unknown"
	}
}

// ParseViewMode parses a string into a ViewMode.
func ParseViewMode(s string) (ViewMode, error) {
	switch s {
	case "combined":
		return Combined, nil
	case "manual":
		return ManualOnly, nil
	case "synced":
		return SyncedOnly, nil
	default:
		return 0, fmt.Errorf("unknown view mode: %q", s)
	}
}

// Filter returns the subset of transactions that take part in this mode.
func (m ViewMode) Filter(txs []Transaction) []Transaction {
	if m == Combined {
		return txs
	}
	want := Manual
	if m == SyncedOnly {
		want = Synced
	}
	out := make([]Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Origin == want {
			out = append(out, tx)
		}
	}
	return out
}

// InconsistencyKind classifies a ledger defect found during replay.
type InconsistencyKind int

const (
	// SellBeforeBuy is a sell with no prior position for the symbol.
	SellBeforeBuy InconsistencyKind = iota
	// Oversell is a sell larger than the position held on its date.
	Oversell
	// CurrencyMismatch is a buy priced in a different currency than the
	// open position it would fold into.
	CurrencyMismatch
)

func (k InconsistencyKind) String() string {
	switch k {
	case SellBeforeBuy:
		return "sell-before-buy"
	case Oversell:
		return "oversell"
	case CurrencyMismatch:
		return "currency-mismatch"
	default:
		return "unknown"
	}
}

// Inconsistency reports a transaction the reconciler could not apply as
// recorded. It is an error value wrapping ErrInconsistentLedger, but it
// never fails a replay pass: the pass degrades (skip or clamp) and reports.
type Inconsistency struct {
	Kind InconsistencyKind
	Tx   Transaction
	Held Quantity // position on the transaction date, before applying it
}

func (i Inconsistency) Error() string {
	if i.Kind == CurrencyMismatch {
		return fmt.Sprintf("%s: %s %s %s in %s on %s, position is priced in another currency",
			i.Kind, i.Tx.Side, i.Tx.Quantity, i.Tx.Symbol, i.Tx.Price.Currency(), i.Tx.Date)
	}
	return fmt.Sprintf("%s: %s %s %s on %s, position was %s",
		i.Kind, i.Tx.Side, i.Tx.Quantity, i.Tx.Symbol, i.Tx.Date, i.Held)
}

func (i Inconsistency) Unwrap() error { return ErrInconsistentLedger }

// Reconcile replays the transaction log and derives one holding per symbol.
//
// Transactions are stable-sorted by date ascending (input order breaks
// ties) and applied in turn: a buy opens a position at the trade price or
// folds into the weighted-average cost basis of an existing one; a sell
// reduces the quantity and leaves the cost basis unchanged.
//
// Symbols are matched case-insensitively: "btc" and "BTC" fold into the
// same position, reported under the upper-case symbol.
//
// A sell that precedes any position is skipped; a sell that exceeds the
// position is clamped at zero; a buy priced in a different currency than
// the open position is skipped. All three are reported as inconsistencies
// rather than failing the pass: the ledger is user data and a bad line
// must not take the whole portfolio view down with it.
//
// The function is pure; replaying the same sequence always yields an
// identical snapshot. Positions that net out to zero are omitted.
func Reconcile(txs []Transaction) (Holdings, []Inconsistency) {
	ordered := make([]Transaction, len(txs))
	copy(ordered, txs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	bySymbol := make(map[string]*Holding)
	var faults []Inconsistency

	for _, tx := range ordered {
		symbol := strings.ToUpper(tx.Symbol)
		h, exists := bySymbol[symbol]

		switch tx.Side {
		case Buy:
			if !exists {
				bySymbol[symbol] = &Holding{
					Name:          displayName(tx),
					Symbol:        symbol,
					Quantity:      tx.Quantity,
					CostBasis:     tx.Price,
					CurrentPrice:  tx.Price, // placeholder until a quote arrives
					FirstAcquired: tx.Date,
				}
				continue
			}
			if h.Quantity.IsZero() {
				// position was closed, this buy reopens it: the cost
				// history restarts, pricing currency included.
				h.FirstAcquired = tx.Date
				h.CostBasis = Money{}
				h.CurrentPrice = tx.Price
			}
			if !sameCurrency(h.CostBasis, tx.Price) {
				faults = append(faults, Inconsistency{Kind: CurrencyMismatch, Tx: tx, Held: h.Quantity})
				continue
			}
			totalCost := h.CostBasis.Mul(h.Quantity).Add(tx.Price.Mul(tx.Quantity))
			newQuantity := h.Quantity.Add(tx.Quantity)
			if newQuantity.IsZero() {
				// avoid division by zero on a degenerate zero-quantity buy
				h.CostBasis = M(0, tx.Price.Currency())
			} else {
				h.CostBasis = totalCost.Div(newQuantity)
			}
			h.Quantity = newQuantity

		case Sell:
			if !exists {
				faults = append(faults, Inconsistency{Kind: SellBeforeBuy, Tx: tx})
				continue
			}
			if h.Quantity.LessThan(tx.Quantity) {
				faults = append(faults, Inconsistency{Kind: Oversell, Tx: tx, Held: h.Quantity})
				h.Quantity = Q(0)
				continue
			}
			// cost basis is unchanged by a sale
			h.Quantity = h.Quantity.Sub(tx.Quantity)
		}
	}

	holdings := make(Holdings, 0, len(bySymbol))
	for _, h := range bySymbol {
		if h.Quantity.IsZero() {
			continue
		}
		holdings = append(holdings, *h)
	}
	holdings.sortBySymbol()
	return holdings, faults
}

func displayName(tx Transaction) string {
	if tx.Name != "" {
		return tx.Name
	}
	return strings.ToUpper(tx.Symbol)
}
