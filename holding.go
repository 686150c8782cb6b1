package coinfolio

import "sort"

// Holding is a derived, per-asset aggregate of quantity and cost basis,
// annotated with a live price. It is destroyed and rebuilt on every
// reconciliation pass; the only mutation path is through the ledger.
type Holding struct {
	Name          string   // display name ("Bitcoin")
	Symbol        string   // asset symbol ("BTC")
	Quantity      Quantity // net quantity held
	CostBasis     Money    // weighted-average purchase price per unit
	CurrentPrice  Money    // last known price per unit, supplied externally
	Favorite      bool     // user-pinned on the holdings view
	DailyChange   Percent  // last 24h price change
	FirstAcquired Date     // date of the buy that opened the position
}

// CurrentValue returns quantity times the current price.
func (h Holding) CurrentValue() Money { return h.CurrentPrice.Mul(h.Quantity) }

// UnrealizedGain returns quantity times (current price minus cost basis).
func (h Holding) UnrealizedGain() Money {
	return h.CurrentPrice.Sub(h.CostBasis).Mul(h.Quantity)
}

// Holdings is a snapshot of all current positions, ordered by symbol.
type Holdings []Holding

// BySymbol returns the holding for a symbol, if present.
func (hs Holdings) BySymbol(symbol string) (Holding, bool) {
	for _, h := range hs {
		if h.Symbol == symbol {
			return h, true
		}
	}
	return Holding{}, false
}

// Symbols returns the symbols of all holdings in order.
func (hs Holdings) Symbols() []string {
	out := make([]string, len(hs))
	for i, h := range hs {
		out[i] = h.Symbol
	}
	return out
}

// TotalValue returns the sum of all current values. The total is carried
// in the currency of the first holding that has one; a holding valued in
// another currency is left out of the sum, there is no exchange rate to
// fold it in with.
func (hs Holdings) TotalValue() Money {
	var total Money
	for _, h := range hs {
		if v := h.CurrentValue(); sameCurrency(total, v) {
			total = total.Add(v)
		}
	}
	return total
}

// AllocationSlice is one slice of the portfolio allocation for charting.
type AllocationSlice struct {
	Symbol  string
	Percent Percent
}

// Allocation breaks holdings into percentage slices of total value.
func (hs Holdings) Allocation() []AllocationSlice {
	total := hs.TotalValue()
	out := make([]AllocationSlice, 0, len(hs))
	for _, h := range hs {
		var pct Percent
		if v := h.CurrentValue(); total.IsPositive() && sameCurrency(total, v) {
			pct = Percent(v.value.Div(total.value).InexactFloat64() * 100)
		}
		out = append(out, AllocationSlice{Symbol: h.Symbol, Percent: pct})
	}
	return out
}

func (hs Holdings) sortBySymbol() {
	sort.Slice(hs, func(i, j int) bool { return hs[i].Symbol < hs[j].Symbol })
}
